package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/doomenstein/doomenstein/internal/world"
)

// Engine wraps a single gopher-lua VM for combat formulas.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every script under
// scriptsDir/combat. A missing directory leaves the engine on its built-in
// formulas.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	vm.SetGlobal("SOURCE_RAY", lua.LNumber(world.SourceRay))
	vm.SetGlobal("SOURCE_PROJECTILE", lua.LNumber(world.SourceProjectile))
	vm.SetGlobal("SOURCE_MELEE", lua.LNumber(world.SourceMelee))

	e := &Engine{vm: vm, log: log}

	combatPath := filepath.Join(scriptsDir, "combat")
	if err := e.loadDir(combatPath); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load combat scripts: %w", err)
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// DamageContext holds pre-packed data for one damage roll.
type DamageContext struct {
	Min             float64
	Max             float64
	Roll            float64 // uniform in [0,1)
	Source          world.DamageSource
	AttackerFaction string
	VictimFaction   string
}

func (c DamageContext) fallback() float64 { return c.Min + c.Roll*(c.Max-c.Min) }

// CalcDamage calls the Lua calc_damage function. A missing function, a
// script error or a non-numeric result falls back to interpolating the range
// by the roll.
func (e *Engine) CalcDamage(ctx DamageContext) float64 {
	fn := e.vm.GetGlobal("calc_damage")
	if fn == lua.LNil {
		return ctx.fallback()
	}

	t := e.vm.NewTable()
	t.RawSetString("min", lua.LNumber(ctx.Min))
	t.RawSetString("max", lua.LNumber(ctx.Max))
	t.RawSetString("roll", lua.LNumber(ctx.Roll))
	t.RawSetString("source", lua.LNumber(ctx.Source))
	t.RawSetString("attacker_faction", lua.LString(ctx.AttackerFaction))
	t.RawSetString("victim_faction", lua.LString(ctx.VictimFaction))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua calc_damage error", zap.Error(err))
		return ctx.fallback()
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua calc_damage returned non-number", zap.String("type", result.Type().String()))
		return ctx.fallback()
	}
	return float64(n)
}

// Damage lets the engine stand in as the map's damage model.
func (e *Engine) Damage(r world.DamageRoll) float64 {
	return e.CalcDamage(DamageContext{
		Min:             r.Range.Min,
		Max:             r.Range.Max,
		Roll:            r.Roll,
		Source:          r.Source,
		AttackerFaction: r.AttackerFaction.String(),
		VictimFaction:   r.VictimFaction.String(),
	})
}

func (e *Engine) Close() {
	e.vm.Close()
}
