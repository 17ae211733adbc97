// Package state persists cross-session application state: the active
// palette pointer and the recently opened palette list.
package state

import (
	"github.com/atma-cli/atma/filesystem"
	"github.com/atma-cli/atma/where"
	"github.com/metafates/gache"
	"github.com/samber/lo"
)

const recentLimit = 10

type appState struct {
	ActivePalette string   `json:"active_palette"`
	Recent        []string `json:"recent"`
}

var cacher = gache.New[*appState](
	&gache.Options{
		Path:       where.State(),
		FileSystem: &filesystem.GacheFs{},
	},
)

func load() (*appState, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return &appState{}, nil
	}
	return cached, nil
}

// ActivePalette returns the path of the palette used when none is given
// explicitly; empty when unset.
func ActivePalette() (string, error) {
	s, err := load()
	if err != nil {
		return "", err
	}
	return s.ActivePalette, nil
}

// SetActivePalette records the default palette and promotes it in the
// recent list.
func SetActivePalette(path string) error {
	s, err := load()
	if err != nil {
		return err
	}
	s.ActivePalette = path

	s.Recent = lo.Uniq(append([]string{path}, s.Recent...))
	if len(s.Recent) > recentLimit {
		s.Recent = s.Recent[:recentLimit]
	}
	return cacher.Set(s)
}

// Recent returns the recently opened palettes, most recent first.
func Recent() ([]string, error) {
	s, err := load()
	if err != nil {
		return nil, err
	}
	return s.Recent, nil
}
