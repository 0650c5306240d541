package battle

// EventKind enumerates lifecycle events on the output stream.
type EventKind int

const (
	EventWin EventKind = iota
	EventLose
	EventPlayerTurnStart
	EventEnemyTurnStart
	EventGoNextWave
	EventDeadEnemy
	EventCharUseSkill
	EventEnemyUseSkill
)

var eventNames = map[EventKind]string{
	EventWin:             "win",
	EventLose:            "lose",
	EventPlayerTurnStart: "player_turn_start",
	EventEnemyTurnStart:  "enemy_turn_start",
	EventGoNextWave:      "go_next_wave",
	EventDeadEnemy:       "dead_enemy",
	EventCharUseSkill:    "char_use_skill",
	EventEnemyUseSkill:   "enemy_use_skill",
}

// String returns the snake_case event name.
func (k EventKind) String() string {
	if n, ok := eventNames[k]; ok {
		return n
	}
	return "unknown"
}

// Event is a lifecycle notification. Only the fields relevant to Kind are set.
type Event struct {
	Kind       EventKind
	Skill      SkillID
	Enemy      EnemyID
	EnemySkill int
	Wave       int
}

// OutputKind distinguishes effect and event outputs.
type OutputKind int

const (
	OutputEffect OutputKind = iota
	OutputEvent
)

// Output is one entry of the observable stream.
type Output struct {
	Kind   OutputKind
	Effect Effect
	Event  Event
}

func effectOutput(e Effect) Output { return Output{Kind: OutputEffect, Effect: e} }
func eventOutput(ev Event) Output { return Output{Kind: OutputEvent, Event: ev} }

// project appends the observable projection of an accepted effect.
//
// Forwarded as effects: Damage, HealHp, ConsumeMp, ConsumeSp, HealSp,
// AddPassive, EndSkill. Forwarded as events: UseSkill, EnemyUseSkill,
// NextWave, ChangeTurn, EndGame, and a kill of an enemy. Everything else is
// internal bookkeeping.
func (s *State) project(buf []Output, e Effect, res AcceptResult) []Output {
	switch e := e.(type) {
	case Damage:
		buf = append(buf, effectOutput(e))
		if res.Killed && e.Target.Kind == LtEnemy {
			buf = append(buf, eventOutput(Event{Kind: EventDeadEnemy, Enemy: e.Target.Enemy}))
		}
	case HealHp, ConsumeMp, ConsumeSp, HealSp, AddPassive, EndSkill:
		buf = append(buf, effectOutput(e))
	case UseSkill:
		buf = append(buf, eventOutput(Event{Kind: EventCharUseSkill, Skill: e.Skill}))
	case EnemyUseSkill:
		buf = append(buf, eventOutput(Event{Kind: EventEnemyUseSkill, Enemy: e.Enemy, EnemySkill: e.Skill}))
	case NextWave:
		buf = append(buf, eventOutput(Event{Kind: EventGoNextWave, Wave: s.wave}))
	case ChangeTurn:
		kind := EventPlayerTurnStart
		if e.Side == SideEnemy {
			kind = EventEnemyTurnStart
		}
		buf = append(buf, eventOutput(Event{Kind: kind}))
	case EndGame:
		kind := EventLose
		if e.Win {
			kind = EventWin
		}
		buf = append(buf, eventOutput(Event{Kind: kind}))
	}
	return buf
}

// IsObservable reports whether an accepted effect of e's type appears on the
// output stream.
func IsObservable(e Effect) bool {
	switch e.(type) {
	case HealMp, AddHate, AddSkillCooldown, HealSkillCooldownAll,
		UpdatePassiveState, UpdateSkillState, AdvanceEnemySkill:
		return false
	}
	return true
}
