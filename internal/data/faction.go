package data

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"
)

// Faction groups actors for targeting and friendly-fire rules.
type Faction uint8

const (
	FactionNeutral Faction = iota
	FactionMarine
	FactionDemon
)

var ErrUnknownFaction = errors.New("unknown faction")

var factionNames = [...]string{
	FactionNeutral: "Neutral",
	FactionMarine:  "Marine",
	FactionDemon:   "Demon",
}

func (f Faction) String() string {
	if int(f) < len(factionNames) {
		return factionNames[f]
	}
	return fmt.Sprintf("Faction(%d)", uint8(f))
}

// Hostile reports whether an actor of faction f may target one of faction o.
// Neutral actors neither target nor get targeted.
func (f Faction) Hostile(o Faction) bool {
	return f != FactionNeutral && o != FactionNeutral && o != f
}

// ParseFaction matches a faction name case-insensitively. An empty string is
// neutral.
func ParseFaction(s string) (Faction, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return FactionNeutral, nil
	}
	folded := cases.Fold().String(s)
	for i, name := range factionNames {
		if cases.Fold().String(name) == folded {
			return Faction(i), nil
		}
	}
	return FactionNeutral, fmt.Errorf("%w: %q", ErrUnknownFaction, s)
}

func (f *Faction) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	v, err := ParseFaction(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*f = v
	return nil
}
