package storage

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/goccy/go-json"
)

// ReadAsset loads and validates the asset stored at path.
func ReadAsset[T ValidatingSpec](path string) (*Asset[T], error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	// Ignoring close error - file is read-only, error is not actionable
	defer func() { _ = file.Close() }()

	jsonData, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	asset := &Asset[T]{}
	err = json.Unmarshal(jsonData, asset)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling asset: %w", err)
	}

	err = asset.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}

	return asset, nil
}

// WriteAsset stores spec at path under the given id.
func WriteAsset[T ValidatingSpec](path string, id string, spec T) error {
	asset := &Asset[T]{
		Version:    AssetVersion,
		Identifier: Identifier(id),
		Spec:       spec,
	}

	err := asset.Validate()
	if err != nil {
		return fmt.Errorf("validating %s: %w", id, err)
	}

	jsonData, err := json.MarshalIndent(asset, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling json: %w", err)
	}

	return atomicWrite(path, jsonData, 0644)
}

// atomicWrite writes data to a temp file then renames it to the target path.
// This prevents partial or empty files if the process is interrupted.
func atomicWrite(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		if removeErr := os.Remove(tmp); removeErr != nil {
			slog.Warn("failed to remove temp file after rename failure", "path", tmp, "error", removeErr)
		}
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
