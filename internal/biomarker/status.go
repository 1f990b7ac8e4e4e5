package biomarker

// Level is the three-step severity a value falls into.
type Level int

const (
	LevelNormal Level = iota
	LevelElevated
	LevelCritical
)

// LogStatus labels a Level on log rows.
type LogStatus string

const (
	StatusNormal   LogStatus = "Normal"
	StatusElevated LogStatus = "Elevated"
	StatusCritical LogStatus = "Critical"
)

// LiveStatus labels a Level on the live stat cards.
type LiveStatus string

const (
	LiveNormal  LiveStatus = "Normal"
	LiveWarning LiveStatus = "Warning"
	LiveAlert   LiveStatus = "Alert"
)

// Threshold holds the inclusive lower bounds of the upper two levels.
type Threshold struct {
	Elevated float64
	Critical float64
}

var thresholds = map[Kind]Threshold{
	Troponin:   {Elevated: 0.05, Critical: 0.40},
	Glucose:    {Elevated: 141, Critical: 200},
	HbA1c:      {Elevated: 5.7, Critical: 6.5},
	Creatinine: {Elevated: 1.4, Critical: 2.0},
	ALT:        {Elevated: 56, Critical: 101},
}

// ThresholdOf returns the bounds for k. ok is false for unknown kinds.
func ThresholdOf(k Kind) (Threshold, bool) {
	t, ok := thresholds[k]
	return t, ok
}

// Classify maps a value to its Level. Boundary values belong to the higher
// level. Unknown kinds are always Normal.
func Classify(k Kind, value float64) Level {
	t, ok := ThresholdOf(k)
	if !ok {
		return LevelNormal
	}
	if value >= t.Critical {
		return LevelCritical
	}
	if value >= t.Elevated {
		return LevelElevated
	}
	return LevelNormal
}

// ClassifyLog classifies a value on the Normal/Elevated/Critical scale.
func ClassifyLog(k Kind, value float64) LogStatus {
	return Classify(k, value).LogStatus()
}

// ClassifyLive classifies a value on the Normal/Warning/Alert scale.
func ClassifyLive(k Kind, value float64) LiveStatus {
	return Classify(k, value).LiveStatus()
}

// LogStatus returns the log-row label for l.
func (l Level) LogStatus() LogStatus {
	switch l {
	case LevelCritical:
		return StatusCritical
	case LevelElevated:
		return StatusElevated
	default:
		return StatusNormal
	}
}

// LiveStatus returns the stat-card label for l.
func (l Level) LiveStatus() LiveStatus {
	switch l {
	case LevelCritical:
		return LiveAlert
	case LevelElevated:
		return LiveWarning
	default:
		return LiveNormal
	}
}

func (l Level) String() string {
	return string(l.LogStatus())
}
