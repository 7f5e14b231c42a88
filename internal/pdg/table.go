package pdg

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed species.yaml
var defaultSpecies []byte

// Species describes one particle species. Mass is in GeV, Charge in units of e.
type Species struct {
	Code   int     `yaml:"code" json:"code"`
	Name   string  `yaml:"name" json:"name"`
	Mass   float64 `yaml:"mass" json:"mass"`
	Charge float64 `yaml:"charge" json:"charge"`
}

// Table looks up species properties by code.
type Table interface {
	Find(code int) (Species, bool)
}

// MapTable is a Table backed by a map.
type MapTable map[int]Species

// Find implements Table.
func (t MapTable) Find(code int) (Species, bool) {
	s, ok := t[code]
	return s, ok
}

// Mass returns the rest mass of code, or 0 when unknown.
func Mass(t Table, code int) (float64, bool) {
	s, ok := t.Find(code)
	if !ok {
		return 0, false
	}
	return s.Mass, true
}

type speciesFile struct {
	Species []Species `yaml:"species"`
}

// Parse decodes a species table document.
func Parse(data []byte) (MapTable, error) {
	var f speciesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse species table: %w", err)
	}

	t := make(MapTable, len(f.Species))
	for _, s := range f.Species {
		if s.Code == 0 {
			return nil, fmt.Errorf("species %q has no code", s.Name)
		}
		if _, dup := t[s.Code]; dup {
			return nil, fmt.Errorf("species code %d listed twice", s.Code)
		}
		t[s.Code] = s
	}
	return t, nil
}

// Load reads a species table from path and overlays it on the built-in table,
// so that a site file only needs to list additions and overrides.
func Load(path string) (MapTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read species table %s: %w", path, err)
	}
	extra, err := Parse(data)
	if err != nil {
		return nil, err
	}

	base := Default()
	t := make(MapTable, len(base)+len(extra))
	for code, s := range base {
		t[code] = s
	}
	for code, s := range extra {
		t[code] = s
	}
	return t, nil
}

var loadDefault = sync.OnceValue(func() MapTable {
	t, err := Parse(defaultSpecies)
	if err != nil {
		panic(fmt.Sprintf("embedded species table: %v", err))
	}
	return t
})

// Default returns the built-in species table. The returned map is shared and
// must not be modified.
func Default() MapTable {
	return loadDefault()
}
