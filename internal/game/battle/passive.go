package battle

import (
	"fmt"

	"github.com/cory-johannsen/wavebattle/internal/game/attr"
)

// PassiveKind is the static id of a passive implementation. A PassiveList
// holds at most one passive per kind.
type PassiveKind string

// PassiveOp selects what a PassiveMessage asks a passive to do.
type PassiveOp int

const (
	// PassiveDecrementTurns lowers the remaining duration by one.
	PassiveDecrementTurns PassiveOp = iota
	// PassiveConsumeCharge spends one charge.
	PassiveConsumeCharge
	// PassiveResetCharges refills charges.
	PassiveResetCharges
	// PassiveAdvanceTimer steps an internal tick timer.
	PassiveAdvanceTimer
)

// PassiveMessage is the state update carried by UpdatePassiveState.
type PassiveMessage struct {
	Op PassiveOp
	N  float64
}

// Passive is a named status effect. Implementations hold private state that
// changes only through Merge and Update, both called from State.Accept.
type Passive interface {
	Kind() PassiveKind
	Name() string
	Display() string
	ShouldTrash() bool
	// Merge folds a newly added passive of the same kind into the receiver.
	Merge(other Passive)
	Update(msg PassiveMessage)
	// Status contributes derived stat modifiers.
	Status(b *attr.StatusBuilder)
	Clone() Passive
}

// Passives may additionally implement any of the hook interfaces below. Hooks
// only push Effects; they never mutate State. A hook that can be triggered by
// its own effects must rate-limit itself through its own state.

// RecvDamageTrigger reacts to damage received by the owner.
type RecvDamageTrigger interface {
	TriggerRecvDamage(owner LtID, dmg Damage, s *State, out *Queue)
}

// TurnStartTrigger reacts to the start of the owner's side turn.
type TurnStartTrigger interface {
	TriggerTurnStart(owner LtID, s *State, out *Queue)
}

// Ticker runs once per real-time tick.
type Ticker interface {
	Tick(owner LtID, s *State, out *Queue)
}

// PassiveList is the per-entity passive registry. Iteration follows first
// insertion order so triggers run deterministically.
//
// It is not safe for concurrent use.
type PassiveList struct {
	byKind  map[PassiveKind]Passive
	order   []PassiveKind
	builder attr.StatusBuilder
	status  attr.Status
	dirty   bool
}

// NewPassiveList creates an empty PassiveList.
func NewPassiveList() *PassiveList {
	return &PassiveList{byKind: make(map[PassiveKind]Passive)}
}

// Add inserts p, or merges it into the existing passive of the same kind.
// A merge that leaves the passive trashable removes it.
//
// Precondition: p.ShouldTrash() is false.
func (l *PassiveList) Add(p Passive) {
	if p.ShouldTrash() {
		panic(fmt.Sprintf("battle: adding passive %q that is already trashable", p.Kind()))
	}
	l.dirty = true
	if existing, ok := l.byKind[p.Kind()]; ok {
		existing.Merge(p)
		if existing.ShouldTrash() {
			l.remove(p.Kind())
		}
		return
	}
	l.byKind[p.Kind()] = p
	l.order = append(l.order, p.Kind())
}

// Update forwards msg to the passive of the given kind. An absent passive is
// ignored; it may have been retired earlier in the same drain.
func (l *PassiveList) Update(kind PassiveKind, msg PassiveMessage) {
	p, ok := l.byKind[kind]
	if !ok {
		return
	}
	p.Update(msg)
	if p.ShouldTrash() {
		l.remove(kind)
	}
	l.dirty = true
}

func (l *PassiveList) remove(kind PassiveKind) {
	delete(l.byKind, kind)
	for i, k := range l.order {
		if k == kind {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

// clear retires every passive. Called when the owner dies.
func (l *PassiveList) clear() {
	clear(l.byKind)
	l.order = l.order[:0]
	l.dirty = true
}

// Status returns the cached derived status, rebuilding it after any change.
func (l *PassiveList) Status() attr.Status {
	if l.dirty {
		l.builder.Reset()
		for _, k := range l.order {
			l.byKind[k].Status(&l.builder)
		}
		l.status = l.builder.Build()
		l.dirty = false
	}
	return l.status
}

// Has reports whether a passive of kind is present.
func (l *PassiveList) Has(kind PassiveKind) bool {
	_, ok := l.byKind[kind]
	return ok
}

// Get returns the passive of kind. Callers must not mutate it.
func (l *PassiveList) Get(kind PassiveKind) (Passive, bool) {
	p, ok := l.byKind[kind]
	return p, ok
}

// Len returns the number of passives.
func (l *PassiveList) Len() int { return len(l.order) }

// Kinds returns the passive kinds in insertion order.
func (l *PassiveList) Kinds() []PassiveKind {
	out := make([]PassiveKind, len(l.order))
	copy(out, l.order)
	return out
}

// Display returns each passive's display string in insertion order.
func (l *PassiveList) Display() []string {
	out := make([]string, 0, len(l.order))
	for _, k := range l.order {
		out = append(out, l.byKind[k].Display())
	}
	return out
}

func (l *PassiveList) triggerRecvDamage(owner LtID, dmg Damage, s *State, out *Queue) {
	for _, k := range l.order {
		if h, ok := l.byKind[k].(RecvDamageTrigger); ok {
			h.TriggerRecvDamage(owner, dmg, s, out)
		}
	}
}

func (l *PassiveList) triggerTurnStart(owner LtID, s *State, out *Queue) {
	for _, k := range l.order {
		if h, ok := l.byKind[k].(TurnStartTrigger); ok {
			h.TriggerTurnStart(owner, s, out)
		}
	}
}

func (l *PassiveList) tick(owner LtID, s *State, out *Queue) {
	for _, k := range l.order {
		if h, ok := l.byKind[k].(Ticker); ok {
			h.Tick(owner, s, out)
		}
	}
}

func (l *PassiveList) clone() *PassiveList {
	c := NewPassiveList()
	for _, k := range l.order {
		c.byKind[k] = l.byKind[k].Clone()
		c.order = append(c.order, k)
	}
	c.dirty = true
	return c
}
