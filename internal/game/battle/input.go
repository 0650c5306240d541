package battle

// InputKind enumerates user commands.
type InputKind int

const (
	InputNone InputKind = iota
	InputUseSkill
	InputTurnEnd
	InputGameStart
)

// Input is one user command fed to Core.Tick.
type Input struct {
	Kind  InputKind
	Skill SkillID
}

// None is the empty command.
func None() Input { return Input{Kind: InputNone} }

// Use asks to start the skill in slot of char.
func Use(char, slot int) Input {
	return Input{Kind: InputUseSkill, Skill: SkillID{Char: CharID{Idx: char}, Slot: slot}}
}

// TurnEnd ends the player turn in turn-based mode.
func TurnEnd() Input { return Input{Kind: InputTurnEnd} }

// GameStart opens the first player turn in turn-based mode.
func GameStart() Input { return Input{Kind: InputGameStart} }
