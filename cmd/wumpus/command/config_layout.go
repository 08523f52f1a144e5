package command

import (
	"fmt"
	"log/slog"

	"github.com/pixil98/go-wumpus/internal/game"
	"github.com/pixil98/go-wumpus/internal/storage"
)

const layoutId = "cave"

func (c *CaveConfig) layout(dice game.Dice, opts []game.LayoutOpt) (game.Layout, error) {
	if c.LayoutFile != "" {
		asset, err := storage.ReadAsset[*game.Layout](c.LayoutFile)
		if err != nil {
			return game.Layout{}, fmt.Errorf("loading layout: %w", err)
		}
		slog.Info("loaded cave layout", "file", c.LayoutFile, "id", asset.Id())
		return *asset.Spec, nil
	}

	l := game.RandomLayout(dice, opts...)
	if c.ExportFile != "" {
		err := storage.WriteAsset(c.ExportFile, layoutId, &l)
		if err != nil {
			return game.Layout{}, fmt.Errorf("exporting layout: %w", err)
		}
		slog.Info("exported cave layout", "file", c.ExportFile)
	}
	return l, nil
}
