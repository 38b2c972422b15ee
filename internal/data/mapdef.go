package data

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SpawnInfo describes one actor placed at map construction or spawned at
// runtime. Faction applies only when HasFaction is set; otherwise the actor
// takes its definition's faction.
type SpawnInfo struct {
	Name        string     `yaml:"actor"`
	Position    [3]float64 `yaml:"position"`
	Orientation [3]float64 `yaml:"orientation"` // yaw, pitch, roll degrees
	Velocity    [3]float64 `yaml:"velocity"`
	Faction     *Faction   `yaml:"faction"`
}

type Lighting struct {
	SunDirection [3]float64 `yaml:"sun_direction"`
	SunIntensity float64    `yaml:"sun_intensity"`
	Ambient      float64    `yaml:"ambient"`
}

// MapDefinition holds a map layout source and its initial spawns. Exactly one
// of Image and Rows is set.
type MapDefinition struct {
	Name     string      `yaml:"name"`
	Image    string      `yaml:"image"` // PNG path, relative to the maps file
	Rows     []string    `yaml:"rows"`  // glyph grid, first row is the highest y
	Spawns   []SpawnInfo `yaml:"spawns"`
	Lighting *Lighting   `yaml:"lighting"`

	baseDir string
}

// DefaultLighting is used by maps that do not override it.
var DefaultLighting = Lighting{
	SunDirection: [3]float64{2, 1, -1},
	SunIntensity: 0.85,
	Ambient:      0.35,
}

// Layout is a classified tile grid. Tiles is indexed by y + x*Height.
type Layout struct {
	Width, Height int
	Tiles         []*TileDefinition
}

func (l *Layout) At(x, y int) *TileDefinition {
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return nil
	}
	return l.Tiles[y+x*l.Height]
}

// Layout classifies the map's source into tiles.
func (d *MapDefinition) Layout(tiles *TileTable) (*Layout, error) {
	if d.Image != "" {
		path := d.Image
		if !filepath.IsAbs(path) && d.baseDir != "" {
			path = filepath.Join(d.baseDir, path)
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("map %s: read image: %w", d.Name, err)
		}
		return LayoutFromPNG(raw, tiles)
	}
	l, err := LayoutFromRows(d.Rows, tiles)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", d.Name, err)
	}
	return l, nil
}

// LayoutFromRows builds a layout from a glyph grid. All rows must have equal
// length.
func LayoutFromRows(rows []string, tiles *TileTable) (*Layout, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("empty layout")
	}
	h, w := len(rows), len(rows[0])
	l := &Layout{Width: w, Height: h, Tiles: make([]*TileDefinition, w*h)}
	for r, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("row %d has %d columns, want %d", r, len(row), w)
		}
		y := h - 1 - r
		for x := 0; x < w; x++ {
			td := tiles.ByGlyph(row[x])
			if td == nil {
				return nil, fmt.Errorf("row %d column %d: unknown glyph %q", r, x, row[x])
			}
			l.Tiles[y+x*h] = td
		}
	}
	return l, nil
}

// LayoutFromPNG classifies every texel of a PNG by its colour. The top image
// row is the highest y.
func LayoutFromPNG(raw []byte, tiles *TileTable) (*Layout, error) {
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}
	return layoutFromImage(img, tiles)
}

func layoutFromImage(img image.Image, tiles *TileTable) (*Layout, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("empty layout")
	}
	l := &Layout{Width: w, Height: h, Tiles: make([]*TileDefinition, w*h)}
	for py := 0; py < h; py++ {
		y := h - 1 - py
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+py)).(color.NRGBA)
			key := uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
			td := tiles.ByColor(key)
			if td == nil {
				return nil, fmt.Errorf("texel (%d,%d): unknown colour #%08x", x, py, key)
			}
			l.Tiles[y+x*h] = td
		}
	}
	return l, nil
}

func (d *MapDefinition) lighting() Lighting {
	if d.Lighting == nil {
		return DefaultLighting
	}
	return *d.Lighting
}

// EffectiveLighting returns the map's lighting, or DefaultLighting.
func (d *MapDefinition) EffectiveLighting() Lighting { return d.lighting() }

type mapListFile struct {
	Maps []MapDefinition `yaml:"maps"`
}

type MapTable struct {
	maps  map[string]*MapDefinition
	order []string
}

func LoadMapTable(path string) (*MapTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read maps: %w", err)
	}
	t, err := ParseMapTable(raw)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	for _, m := range t.maps {
		m.baseDir = dir
	}
	return t, nil
}

func ParseMapTable(raw []byte) (*MapTable, error) {
	var f mapListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse maps: %w", err)
	}
	t := &MapTable{maps: make(map[string]*MapDefinition, len(f.Maps))}
	for i := range f.Maps {
		m := &f.Maps[i]
		if m.Name == "" {
			return nil, fmt.Errorf("parse maps: entry %d has no name", i)
		}
		if _, dup := t.maps[m.Name]; dup {
			return nil, fmt.Errorf("parse maps: duplicate map %q", m.Name)
		}
		if (m.Image == "") == (len(m.Rows) == 0) {
			return nil, fmt.Errorf("parse maps: map %q needs exactly one of image or rows", m.Name)
		}
		t.maps[m.Name] = m
		t.order = append(t.order, m.Name)
	}
	return t, nil
}

func (t *MapTable) Get(name string) *MapDefinition { return t.maps[name] }
func (t *MapTable) Count() int                     { return len(t.maps) }
func (t *MapTable) Names() []string                { return t.order }
