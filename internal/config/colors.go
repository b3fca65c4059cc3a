// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/pdiddy/juris-curador/pkg/types"
)

// Yellow is used for any highlight colour that cannot be read.
var Yellow = []float64{1, 1, 0}

var requiredCategories = []string{
	types.CategoryPrimary,
	types.CategorySecondary,
	types.CategoryFallback,
}

// HighlightColors returns the configured colours with every component in
// [0, 1]. A colour given on the 0-255 scale (any component above 1) is
// divided by 255. Missing or malformed colours become Yellow and are logged.
func HighlightColors(cfg types.Config, log zerolog.Logger) map[string][]float64 {
	names := make([]string, 0, len(cfg.HighlightColors))
	for name := range cfg.HighlightColors {
		names = append(names, name)
	}
	for _, name := range requiredCategories {
		if _, ok := cfg.HighlightColors[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	out := make(map[string][]float64, len(names))
	for _, name := range names {
		c, ok := normalizeColor(cfg.HighlightColors[name])
		if !ok {
			log.Warn().Str("category", name).
				Interface("value", cfg.HighlightColors[name]).
				Msg("invalid highlight color, using yellow")
			c = append([]float64(nil), Yellow...)
		}
		out[name] = c
	}
	return out
}

func normalizeColor(c []float64) ([]float64, bool) {
	if len(c) != 3 {
		return nil, false
	}
	scale := 1.0
	for _, v := range c {
		if v < 0 {
			return nil, false
		}
		if v > 1 {
			scale = 255
		}
	}
	out := make([]float64, 3)
	for i, v := range c {
		out[i] = min(v/scale, 1)
	}
	return out, true
}
