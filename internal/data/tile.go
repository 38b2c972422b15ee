package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TileDefinition classifies a map cell. Glyph identifies the tile in text
// layouts, Color in image layouts.
type TileDefinition struct {
	Name  string `yaml:"name"`
	Solid bool   `yaml:"solid"`
	Glyph string `yaml:"glyph"`
	Color []int  `yaml:"color"` // r, g, b (alpha optional, default 255)
}

// RGBA returns the classification colour packed as 0xRRGGBBAA, and false when
// the tile has no colour.
func (d *TileDefinition) RGBA() (uint32, bool) {
	if len(d.Color) < 3 {
		return 0, false
	}
	a := 255
	if len(d.Color) > 3 {
		a = d.Color[3]
	}
	return uint32(d.Color[0]&0xFF)<<24 | uint32(d.Color[1]&0xFF)<<16 | uint32(d.Color[2]&0xFF)<<8 | uint32(a&0xFF), true
}

type tileListFile struct {
	Tiles []TileDefinition `yaml:"tiles"`
}

type TileTable struct {
	tiles   map[string]*TileDefinition
	byGlyph map[byte]*TileDefinition
	byColor map[uint32]*TileDefinition
}

func LoadTileTable(path string) (*TileTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tiles: %w", err)
	}
	return ParseTileTable(raw)
}

func ParseTileTable(raw []byte) (*TileTable, error) {
	var f tileListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse tiles: %w", err)
	}
	t := &TileTable{
		tiles:   make(map[string]*TileDefinition, len(f.Tiles)),
		byGlyph: make(map[byte]*TileDefinition, len(f.Tiles)),
		byColor: make(map[uint32]*TileDefinition, len(f.Tiles)),
	}
	for i := range f.Tiles {
		d := &f.Tiles[i]
		if d.Name == "" {
			return nil, fmt.Errorf("parse tiles: entry %d has no name", i)
		}
		if _, dup := t.tiles[d.Name]; dup {
			return nil, fmt.Errorf("parse tiles: duplicate tile %q", d.Name)
		}
		t.tiles[d.Name] = d
		if len(d.Glyph) > 1 {
			return nil, fmt.Errorf("parse tiles: tile %q glyph %q must be one character", d.Name, d.Glyph)
		}
		if d.Glyph != "" {
			if other, dup := t.byGlyph[d.Glyph[0]]; dup {
				return nil, fmt.Errorf("parse tiles: glyph %q used by %q and %q", d.Glyph, other.Name, d.Name)
			}
			t.byGlyph[d.Glyph[0]] = d
		}
		if c, ok := d.RGBA(); ok {
			t.byColor[c] = d
		}
	}
	return t, nil
}

func (t *TileTable) Get(name string) *TileDefinition { return t.tiles[name] }

// ByGlyph returns the tile drawn with glyph g, or nil.
func (t *TileTable) ByGlyph(g byte) *TileDefinition { return t.byGlyph[g] }

// ByColor returns the tile classified by the packed 0xRRGGBBAA colour, or nil.
func (t *TileTable) ByColor(rgba uint32) *TileDefinition { return t.byColor[rgba] }

func (t *TileTable) Count() int { return len(t.tiles) }
