package data

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Animation is one of the standard animation slots an actor can play.
type Animation uint8

const (
	AnimNone Animation = iota
	AnimWalk
	AnimAttack
	AnimHurt
	AnimDeath

	animCount
)

var animationNames = [...]string{
	AnimNone:   "None",
	AnimWalk:   "Walk",
	AnimAttack: "Attack",
	AnimHurt:   "Hurt",
	AnimDeath:  "Death",
}

func (a Animation) String() string {
	if a < animCount {
		return animationNames[a]
	}
	return fmt.Sprintf("Animation(%d)", uint8(a))
}

func ParseAnimation(s string) (Animation, error) {
	for i := AnimWalk; i < animCount; i++ {
		if strings.EqualFold(s, animationNames[i]) {
			return i, nil
		}
	}
	return AnimNone, fmt.Errorf("unknown animation %q", s)
}

func (a *Animation) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	v, err := ParseAnimation(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*a = v
	return nil
}
