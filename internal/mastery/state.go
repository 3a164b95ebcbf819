package mastery

// Level is a coarse band over the mastery probability, used for display.
type Level string

const (
	LevelNovice     Level = "novice"
	LevelDeveloping Level = "developing"
	LevelProficient Level = "proficient"
	LevelMastered   Level = "mastered"
)

// Band thresholds on p_known. A skill at or above MasteredThreshold is
// considered mastered.
const (
	DevelopingThreshold = 0.4
	ProficientThreshold = 0.7
	MasteredThreshold   = 0.95
)

// LevelFor maps a mastery probability to its band.
func LevelFor(pKnown float64) Level {
	switch {
	case pKnown >= MasteredThreshold:
		return LevelMastered
	case pKnown >= ProficientThreshold:
		return LevelProficient
	case pKnown >= DevelopingThreshold:
		return LevelDeveloping
	default:
		return LevelNovice
	}
}
