package skills

import "github.com/cory-johannsen/wavebattle/internal/game/battle"

// frontEnemy is the first living enemy of the current wave in slot order.
func frontEnemy(s *battle.State) (battle.LtID, bool) {
	e, ok := s.NextLivingEnemy(0)
	if !ok {
		return battle.LtID{}, false
	}
	return e.LtID(), true
}

func allEnemies(s *battle.State) []battle.LtID {
	var out []battle.LtID
	for _, e := range s.LivingEnemies() {
		out = append(out, e.LtID())
	}
	return out
}

func allChars(s *battle.State) []battle.LtID {
	var out []battle.LtID
	for _, c := range s.LivingChars() {
		out = append(out, c.LtID())
	}
	return out
}

// weakestChar is the living character with the lowest HP fraction; ties go
// to the lower slot.
func weakestChar(s *battle.State) (battle.LtID, bool) {
	var best *battle.Char
	for _, c := range s.LivingChars() {
		if best == nil || c.HPFraction() < best.HPFraction() {
			best = c
		}
	}
	if best == nil {
		return battle.LtID{}, false
	}
	return best.LtID(), true
}

func magicHit(mag float64, hits int) Action {
	return func(id battle.SkillID, s *battle.State, out *battle.Queue) {
		t, ok := frontEnemy(s)
		if !ok {
			return
		}
		for i := 0; i < hits; i++ {
			out.Push(battle.NewMagicDamage(s, battle.CharLt(id.Char), t, mag))
		}
	}
}

func physicsHit(mag float64, hits int) Action {
	return func(id battle.SkillID, s *battle.State, out *battle.Queue) {
		t, ok := frontEnemy(s)
		if !ok {
			return
		}
		for i := 0; i < hits; i++ {
			out.Push(battle.NewPhysicsDamage(s, battle.CharLt(id.Char), t, mag))
		}
	}
}

func magicSweep(mag float64) Action {
	return func(id battle.SkillID, s *battle.State, out *battle.Queue) {
		for _, t := range allEnemies(s) {
			out.Push(battle.NewMagicDamage(s, battle.CharLt(id.Char), t, mag))
		}
	}
}
