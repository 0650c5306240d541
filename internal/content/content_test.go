package content_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/wavebattle/internal/content"
	"github.com/cory-johannsen/wavebattle/internal/game/battle"
	"github.com/cory-johannsen/wavebattle/internal/game/battle/passives"
	"github.com/cory-johannsen/wavebattle/internal/game/battle/skills"
	"github.com/cory-johannsen/wavebattle/internal/game/rng"
	"github.com/cory-johannsen/wavebattle/internal/scripting"
)

const mageYAML = `
id: mage
name: Mage
level: 3
potential: {int: 20, vit: 8, str: 6, dex: 8, agi: 8}
weapon: {type: magic_book, matk: 12}
skills: [fireball, heal]
`

const knightYAML = `
id: knight
name: Knight
level: 3
potential: {int: 5, vit: 15, str: 15, dex: 8, agi: 7}
weapon: {type: sword_and_shield, patk: 10}
skills: [slash, taunt, guard]
`

const goblinYAML = `
id: goblin
name: Goblin
level: 2
potential: {int: 5, vit: 10, str: 15, dex: 10, agi: 10}
skills:
  - name: stab
    startup_frames: 40
    recovery_frames: 60
    actions:
      - target: {kind: single}
        damage: {type: physics, mag: 1.0}
  - name: firebomb
    need_mp: 30
    startup_frames: 80
    recovery_frames: 40
    actions:
      - target: {kind: multi, n: 2}
        damage: {type: magic, mag: 0.6, count: 2}
      - target: {kind: all}
        passive: {id: burn, params: {turns: 2}}
patterns: [[0, 0, 1], [1, 0]]
passives:
  - id: counter
    params: {charges: 1}
`

const campYAML = `
id: camp
name: Goblin Camp
mode: turn_based
party: [mage, knight]
waves:
  - [goblin]
  - [goblin, goblin]
`

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, body := range files {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	return dir
}

func validTree() map[string]string {
	return map[string]string{
		"characters/mage.yaml":   mageYAML,
		"characters/knight.yaml": knightYAML,
		"enemies/goblin.yaml":    goblinYAML,
		"encounters/camp.yaml":   campYAML,
	}
}

func TestLoadDir_Valid(t *testing.T) {
	lib, err := content.LoadDir(writeTree(t, validTree()))
	require.NoError(t, err)

	assert.Len(t, lib.Characters, 2)
	assert.Len(t, lib.Enemies, 1)
	assert.Equal(t, []string{"camp"}, lib.EncounterIDs())

	goblin := lib.Enemies["goblin"]
	require.Len(t, goblin.Skills, 2)
	assert.Equal(t, 30.0, goblin.Skills[1].NeedMP)
	assert.Equal(t, 2, goblin.Skills[1].Actions[0].Target.N)
}

func TestLoadDir_MissingDir(t *testing.T) {
	_, err := content.LoadDir(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestLoadDir_Rejects(t *testing.T) {
	cases := []struct {
		name  string
		path  string
		body  string
		match string
	}{
		{"unknown field", "characters/bad.yaml", mageYAML + "mana: 3\n", "mana"},
		{"bad potential", "characters/bad.yaml", `
id: bad
name: Bad
level: 1
potential: {int: 10, vit: 10, str: 10, dex: 10, agi: 11}
skills: [slash]
`, "sum to 51"},
		{"too many skills", "characters/bad.yaml", `
id: bad
name: Bad
level: 1
potential: {int: 10, vit: 10, str: 10, dex: 10, agi: 10}
skills: [slash, slash, slash, slash, slash, slash, slash]
`, "7 skills"},
		{"bad weapon", "characters/bad.yaml", `
id: bad
name: Bad
level: 1
potential: {int: 10, vit: 10, str: 10, dex: 10, agi: 10}
weapon: {type: trident}
skills: [slash]
`, "trident"},
		{"pattern out of range", "enemies/bad.yaml", `
id: bad
name: Bad
level: 1
potential: {int: 10, vit: 10, str: 10, dex: 10, agi: 10}
skills: [{name: poke, startup_frames: 1}]
patterns: [[0, 1]]
`, "references skill 1"},
		{"zero startup", "enemies/bad.yaml", `
id: bad
name: Bad
level: 1
potential: {int: 10, vit: 10, str: 10, dex: 10, agi: 10}
skills: [{name: poke, startup_frames: 0}]
patterns: [[0]]
`, "startup_frames"},
		{"action with both kinds", "enemies/bad.yaml", `
id: bad
name: Bad
level: 1
potential: {int: 10, vit: 10, str: 10, dex: 10, agi: 10}
skills:
  - name: poke
    startup_frames: 1
    actions:
      - damage: {type: magic, mag: 1}
        passive: {id: burn}
patterns: [[0]]
`, "exactly one"},
		{"multi without n", "enemies/bad.yaml", `
id: bad
name: Bad
level: 1
potential: {int: 10, vit: 10, str: 10, dex: 10, agi: 10}
skills:
  - name: poke
    startup_frames: 1
    actions:
      - target: {kind: multi}
        damage: {type: magic, mag: 1}
patterns: [[0]]
`, "n >= 1"},
		{"bad mode", "encounters/bad.yaml", `
id: bad
mode: chess
party: [mage]
waves: [[goblin]]
`, "chess"},
		{"empty wave", "encounters/bad.yaml", `
id: bad
party: [mage]
waves: [[]]
`, "wave 0 is empty"},
		{"duplicate id", "characters/mage2.yaml", mageYAML, "duplicate character id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			files := validTree()
			files[tc.path] = tc.body
			_, err := content.LoadDir(writeTree(t, files))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.match)
		})
	}
}

func TestBuild_Encounter(t *testing.T) {
	lib, err := content.LoadDir(writeTree(t, validTree()))
	require.NoError(t, err)

	args, err := lib.Build("camp", content.NewResolver(nil))
	require.NoError(t, err)

	assert.Equal(t, battle.ModeTurnBased, args.Mode)
	require.Len(t, args.Chars, 2)
	assert.Equal(t, "mage", args.Chars[0].StaticID)
	assert.Len(t, args.Chars[1].Skills, 3)
	require.NotNil(t, args.Chars[0].Weapon)
	assert.Equal(t, 12.0, args.Chars[0].Weapon.MAtk)

	require.Len(t, args.Dungeon, 2)
	assert.Len(t, args.Dungeon[1], 2)
	goblin := args.Dungeon[0][0]
	require.Len(t, goblin.Passives, 1)
	assert.Equal(t, passives.KindCounter, goblin.Passives[0].Kind())

	fire := goblin.Skills[1]
	require.Len(t, fire.Actions, 2)
	assert.Equal(t, battle.TargetSelector{Kind: battle.TargetMulti, N: 2}, fire.Actions[0].Target)
	assert.Equal(t, battle.DamageAction{Type: battle.DamageMagic, Mag: 0.6, Count: 2}, fire.Actions[0].Action)
	pa, ok := fire.Actions[1].Action.(battle.PassiveAction)
	require.True(t, ok)
	assert.Equal(t, passives.KindBurn, pa.Passive.Kind())
	assert.Equal(t, 1, goblin.Skills[0].Actions[0].Action.(battle.DamageAction).Count, "count defaults to one")

	_, err = battle.New(args, battle.WithSource(rng.NewSeeded(1)))
	assert.NoError(t, err)
}

func TestBuild_FreshPassivesPerBuild(t *testing.T) {
	lib, err := content.LoadDir(writeTree(t, validTree()))
	require.NoError(t, err)
	r := content.NewResolver(nil)

	a, err := lib.Build("camp", r)
	require.NoError(t, err)
	b, err := lib.Build("camp", r)
	require.NoError(t, err)
	assert.NotSame(t, a.Dungeon[0][0].Passives[0], b.Dungeon[0][0].Passives[0])
}

func TestBuild_Errors(t *testing.T) {
	t.Run("unknown encounter", func(t *testing.T) {
		lib, err := content.LoadDir(writeTree(t, validTree()))
		require.NoError(t, err)
		_, err = lib.Build("castle", content.NewResolver(nil))
		assert.True(t, errors.Is(err, content.ErrNotFound))
	})
	t.Run("unknown character", func(t *testing.T) {
		files := validTree()
		files["encounters/camp.yaml"] = "id: camp\nparty: [bard]\nwaves: [[goblin]]\n"
		lib, err := content.LoadDir(writeTree(t, files))
		require.NoError(t, err)
		_, err = lib.Build("camp", content.NewResolver(nil))
		assert.True(t, errors.Is(err, content.ErrNotFound))
	})
	t.Run("unknown skill", func(t *testing.T) {
		files := validTree()
		files["characters/mage.yaml"] = `
id: mage
name: Mage
level: 1
potential: {int: 10, vit: 10, str: 10, dex: 10, agi: 10}
skills: [teleport]
`
		lib, err := content.LoadDir(writeTree(t, files))
		require.NoError(t, err)
		_, err = lib.Build("camp", content.NewResolver(nil))
		assert.True(t, errors.Is(err, skills.ErrUnknownSkill))
	})
	t.Run("unknown passive", func(t *testing.T) {
		files := validTree()
		files["enemies/goblin.yaml"] = goblinYAML + "  - id: curse\n"
		lib, err := content.LoadDir(writeTree(t, files))
		require.NoError(t, err)
		_, err = lib.Build("camp", content.NewResolver(nil))
		assert.True(t, errors.Is(err, passives.ErrUnknownPassive))
	})
	t.Run("bad passive params", func(t *testing.T) {
		files := validTree()
		files["enemies/goblin.yaml"] = goblinYAML + "  - id: burn\n    params: {turns: 0}\n"
		lib, err := content.LoadDir(writeTree(t, files))
		require.NoError(t, err)
		_, err = lib.Build("camp", content.NewResolver(nil))
		assert.True(t, errors.Is(err, passives.ErrInvalidParams))
	})
	t.Run("scripted passive without scripting", func(t *testing.T) {
		files := validTree()
		files["enemies/goblin.yaml"] = goblinYAML + "  - id: lua:thorns\n"
		lib, err := content.LoadDir(writeTree(t, files))
		require.NoError(t, err)
		_, err = lib.Build("camp", content.NewResolver(nil))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "scripting is not configured")
	})
	t.Run("team too large", func(t *testing.T) {
		files := validTree()
		files["encounters/camp.yaml"] = "id: camp\nparty: [mage, knight, mage, knight, mage]\nwaves: [[goblin]]\n"
		lib, err := content.LoadDir(writeTree(t, files))
		require.NoError(t, err)
		_, err = lib.Build("camp", content.NewResolver(nil))
		assert.True(t, errors.Is(err, battle.ErrTeamTooLarge))
	})
}

func TestResolver_ScriptedPassive(t *testing.T) {
	m := scripting.NewManager(zap.NewNop(), 0)
	t.Cleanup(m.Close)
	require.NoError(t, m.LoadString(`
function thorns_on_recv_damage(ctx)
	return {{kind = "damage", target = "causer", mag = 0.1}, {kind = "consume"}}
end
`))
	r := content.NewResolver(m)

	p, err := r.Passive(content.PassiveSpec{ID: "lua:thorns", Params: map[string]float64{"charges": 2}})
	require.NoError(t, err)
	assert.Equal(t, battle.PassiveKind("lua:thorns"), p.Kind())
	assert.Equal(t, 2, p.(*scripting.Passive).Charges())
	assert.False(t, p.ShouldTrash(), "zero turns is permanent")

	_, err = r.Passive(content.PassiveSpec{ID: "lua:nothing"})
	assert.True(t, errors.Is(err, scripting.ErrUnknownScript))

	_, err = r.Passive(content.PassiveSpec{ID: "lua:thorns", Params: map[string]float64{"turns": 1.5}})
	assert.Error(t, err)
}
