package scripting

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// ErrUnknownScript is returned when a passive names a script that defines
// none of the passive hooks.
var ErrUnknownScript = errors.New("unknown script passive")

// Hook name suffixes. A script passive called "thorns" defines any of
// thorns_on_turn_start, thorns_on_tick and thorns_on_recv_damage.
const (
	HookTurnStart  = "_on_turn_start"
	HookTick       = "_on_tick"
	HookRecvDamage = "_on_recv_damage"
)

// DirectiveKind is what a hook asks for.
type DirectiveKind int

const (
	// DirectiveDamage deals Mag of the target's max HP as fixed damage.
	DirectiveDamage DirectiveKind = iota
	// DirectiveHeal restores Mag of the target's max HP.
	DirectiveHeal
	// DirectiveDecrement counts the passive's turns down by Mag (default 1).
	DirectiveDecrement
	// DirectiveConsume spends Mag charges (default 1).
	DirectiveConsume
)

var directiveKinds = map[string]DirectiveKind{
	"damage":    DirectiveDamage,
	"heal":      DirectiveHeal,
	"decrement": DirectiveDecrement,
	"consume":   DirectiveConsume,
}

// Directive is one entry of a hook's return value.
type Directive struct {
	Kind DirectiveKind
	// ToCauser targets whoever caused the damage being reacted to instead of
	// the passive's owner.
	ToCauser bool
	Mag      float64
}

// HookContext is the read-only view handed to a hook as its ctx table.
type HookContext struct {
	Owner      string
	HP         float64
	MaxHP      float64
	Turns      int
	Charges    int
	Damage     float64
	DamageType string
	HasCauser  bool
}

func (c HookContext) table(L *lua.LState) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "owner", lua.LString(c.Owner))
	L.SetField(t, "hp", lua.LNumber(c.HP))
	L.SetField(t, "max_hp", lua.LNumber(c.MaxHP))
	L.SetField(t, "turns", lua.LNumber(c.Turns))
	L.SetField(t, "charges", lua.LNumber(c.Charges))
	L.SetField(t, "damage", lua.LNumber(c.Damage))
	L.SetField(t, "damage_type", lua.LString(c.DamageType))
	L.SetField(t, "has_causer", lua.LBool(c.HasCauser))
	return t
}

// Manager owns one sandboxed LState holding every loaded script.
//
// Manager is safe for concurrent use: the LState is single-threaded, so every
// call is serialized by mu.
type Manager struct {
	mu     sync.Mutex
	L      *lua.LState
	limit  int
	logger *zap.Logger
}

// NewManager creates a Manager whose hook calls each get instLimit opcodes.
//
// Precondition: logger must be non-nil; instLimit >= 0 (0 = default).
// Postcondition: Returns a Manager with the battle module registered and no
// scripts loaded.
func NewManager(logger *zap.Logger, instLimit int) *Manager {
	if logger == nil {
		panic("scripting.NewManager: logger must not be nil")
	}
	m := &Manager{L: NewSandboxedState(instLimit), limit: instLimit, logger: logger}
	m.RegisterModules(m.L)
	return m
}

// LoadManager returns a new Manager with every script in dir loaded. Script
// globals live in the Manager, so battles that must not share them each take
// their own.
//
// Postcondition: Returns a ready Manager, or a non-nil error with nothing left open.
func LoadManager(logger *zap.Logger, instLimit int, dir string) (*Manager, error) {
	m := NewManager(logger, instLimit)
	if err := m.LoadDir(dir); err != nil {
		m.Close()
		return nil, err
	}
	return m, nil
}

// LoadDir executes every *.lua file in dir in lexicographic order.
//
// Postcondition: Returns an error naming the first file that fails to load.
func (m *Manager) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q: %w", dir, err)
	}
	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, path := range luaFiles {
		ResetBudget(m.L, m.limit)
		if err := m.L.DoFile(path); err != nil {
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
		m.logger.Debug("loaded script", zap.String("path", path))
	}
	return nil
}

// LoadString executes src as a chunk.
func (m *Manager) LoadString(src string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ResetBudget(m.L, m.limit)
	if err := m.L.DoString(src); err != nil {
		return fmt.Errorf("scripting: loading chunk: %w", err)
	}
	return nil
}

// Close releases the VM.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.L.Close()
}

// HasHook reports whether the global function hook is defined.
func (m *Manager) HasHook(hook string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.L.GetGlobal(hook).Type() == lua.LTFunction
}

// Invoke calls hook with ctx and decodes the returned directives. A missing
// hook returns nil. Lua runtime errors, an exhausted budget and malformed
// directives are logged at Warn and never propagated.
func (m *Manager) Invoke(hook string, ctx HookContext) []Directive {
	m.mu.Lock()
	defer m.mu.Unlock()

	fn := m.L.GetGlobal(hook)
	if fn.Type() != lua.LTFunction {
		return nil
	}
	ResetBudget(m.L, m.limit)
	if err := m.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, ctx.table(m.L)); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", hook),
			zap.Error(err),
		)
		return nil
	}
	ret := m.L.Get(-1)
	m.L.Pop(1)
	return m.decode(hook, ret)
}

func (m *Manager) decode(hook string, ret lua.LValue) []Directive {
	if ret == lua.LNil {
		return nil
	}
	list, ok := ret.(*lua.LTable)
	if !ok {
		m.logger.Warn("scripting: hook returned a non-table", zap.String("hook", hook), zap.String("type", ret.Type().String()))
		return nil
	}
	var out []Directive
	for i := 1; i <= list.Len(); i++ {
		entry, ok := list.RawGetInt(i).(*lua.LTable)
		if !ok {
			m.logger.Warn("scripting: directive is not a table", zap.String("hook", hook), zap.Int("index", i))
			continue
		}
		d, err := decodeDirective(entry)
		if err != nil {
			m.logger.Warn("scripting: bad directive", zap.String("hook", hook), zap.Int("index", i), zap.Error(err))
			continue
		}
		out = append(out, d)
	}
	return out
}

func decodeDirective(t *lua.LTable) (Directive, error) {
	var d Directive
	kind, ok := directiveKinds[lua.LVAsString(t.RawGetString("kind"))]
	if !ok {
		return d, fmt.Errorf("unknown kind %q", lua.LVAsString(t.RawGetString("kind")))
	}
	d.Kind = kind
	switch target := lua.LVAsString(t.RawGetString("target")); target {
	case "", "self":
	case "causer":
		d.ToCauser = true
	default:
		return d, fmt.Errorf("unknown target %q", target)
	}
	d.Mag = float64(lua.LVAsNumber(t.RawGetString("mag")))
	if d.Mag < 0 {
		return d, fmt.Errorf("negative mag %v", d.Mag)
	}
	if kind == DirectiveDecrement || kind == DirectiveConsume {
		if d.Mag != math.Trunc(d.Mag) {
			return d, fmt.Errorf("fractional mag %v for a count", d.Mag)
		}
		if d.Mag == 0 {
			d.Mag = 1
		}
	}
	return d, nil
}
