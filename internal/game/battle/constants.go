package battle

const (
	NumMaxCharInTeam      = 4
	NumMaxLearnSkills     = 6
	NumMaxEnemiesInWave   = 5
	NumMaxWaves           = 10
	NumViewSkills         = 5
	TurnStartHealMPNum    = 100
	TurnStartHealSPNum    = 50
	SkillCooldownHealBase = 50
	MaxSP                 = 300
)
