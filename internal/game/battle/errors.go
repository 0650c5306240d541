package battle

import (
	"errors"
	"fmt"
)

// Construction errors.
var (
	ErrEmptyTeam         = errors.New("battle: team is empty")
	ErrTeamTooLarge      = errors.New("battle: team exceeds NumMaxCharInTeam")
	ErrDuplicateChar     = errors.New("battle: duplicate character id")
	ErrInvalidLevel      = errors.New("battle: level must be >= 1")
	ErrSkillCount        = errors.New("battle: skill count outside [1, NumMaxLearnSkills]")
	ErrNoWaves           = errors.New("battle: dungeon has no waves")
	ErrTooManyWaves      = errors.New("battle: dungeon exceeds NumMaxWaves")
	ErrEmptyWave         = errors.New("battle: wave is empty")
	ErrWaveTooLarge      = errors.New("battle: wave exceeds NumMaxEnemiesInWave")
	ErrNoEnemySkills     = errors.New("battle: enemy has no skills")
	ErrEmptyPattern      = errors.New("battle: enemy action pattern is empty")
	ErrUnknownEnemySkill = errors.New("battle: action pattern references unknown skill")
	ErrInvalidFrames     = errors.New("battle: enemy skill frames invalid")
)

// Runtime errors.
var (
	ErrAlreadyGameEnded = errors.New("battle: game already ended")
	ErrInvalidArgument  = errors.New("battle: invalid argument")
	ErrUnusableSkill    = fmt.Errorf("%w: unusable skill", ErrInvalidArgument)
	ErrEffectOverflow   = errors.New("battle: effect drain exceeded bound")
)
