package storage

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/pixil98/go-errors"
)

// AssetVersion is the envelope version written by WriteAsset.
const AssetVersion = 1

var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9-]*$`)

type ValidatingSpec interface {
	Validate() error
}

type Identifier string

func (id Identifier) String() string {
	return string(id)
}

// Asset is the on-disk envelope around a stored spec.
type Asset[T ValidatingSpec] struct {
	Version    uint       `json:"version"`
	Identifier Identifier `json:"id"`
	Spec       T          `json:"spec"`
}

func (a *Asset[T]) Id() Identifier {
	return a.Identifier
}

func (a *Asset[T]) Validate() error {
	el := errors.NewErrorList()

	if a.Version == 0 {
		el.Add(fmt.Errorf("version must be set"))
	} else if a.Version > AssetVersion {
		el.Add(fmt.Errorf("unsupported version %d", a.Version))
	}

	if a.Identifier == "" {
		el.Add(fmt.Errorf("id must be set"))
	}

	if !identifierPattern.MatchString(a.Identifier.String()) {
		el.Add(fmt.Errorf("id must be alphanumeric"))
	}

	v := reflect.ValueOf(a.Spec)
	if !v.IsValid() || (v.Kind() == reflect.Pointer && v.IsNil()) {
		el.Add(fmt.Errorf("spec must be set"))
		return el.Err()
	}
	el.Add(a.Spec.Validate())

	return el.Err()
}
