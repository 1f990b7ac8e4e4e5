package alerts

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jwulff/biomon-go/internal/biomarker"
	"github.com/jwulff/biomon-go/internal/series"
)

// criticalOrder is the order critical conditions are checked in.
var criticalOrder = []biomarker.Kind{
	biomarker.Troponin,
	biomarker.Glucose,
	biomarker.Creatinine,
	biomarker.ALT,
	biomarker.HbA1c,
}

var criticalTitles = map[biomarker.Kind]string{
	biomarker.Troponin:   "Troponin Level High",
	biomarker.Glucose:    "Glucose Very High",
	biomarker.Creatinine: "Creatinine High",
	biomarker.ALT:        "ALT High",
	biomarker.HbA1c:      "HbA1c High",
}

// CriticalMessage formats the alert text for a critical value of k.
func CriticalMessage(k biomarker.Kind, value float64) string {
	v := strconv.FormatFloat(value, 'f', -1, 64)
	unit := biomarker.UnitOf(k)
	if unit == "%" {
		return fmt.Sprintf("Critical: %s (%s%%)", criticalTitles[k], v)
	}
	return fmt.Sprintf("Critical: %s (%s %s)", criticalTitles[k], v, unit)
}

// Trigger is one critical condition found on a reading.
type Trigger struct {
	Kind    biomarker.Kind
	Message string
}

// Triggers returns one entry per biomarker of r at or above its critical
// bound.
func Triggers(r series.Reading) []Trigger {
	var out []Trigger
	for _, k := range criticalOrder {
		v := r.Value(k)
		if biomarker.Classify(k, v) == biomarker.LevelCritical {
			out = append(out, Trigger{Kind: k, Message: CriticalMessage(k, v)})
		}
	}
	return out
}

// CriticalMessages returns the alert text of every trigger on r.
func CriticalMessages(r series.Reading) []string {
	var out []string
	for _, t := range Triggers(r) {
		out = append(out, t.Message)
	}
	return out
}

// Healthy is the recommendation when nothing is elevated.
const Healthy = "All monitored biomarkers are within healthy ranges."

// Recommendation summarises which biomarkers of r are at or above their
// elevated bound.
func Recommendation(r series.Reading) string {
	var flags []string
	for _, k := range biomarker.Kinds() {
		if biomarker.Classify(k, r.Value(k)) >= biomarker.LevelElevated {
			flags = append(flags, string(k)+" Elevated")
		}
	}
	if len(flags) == 0 {
		return Healthy
	}
	return fmt.Sprintf("Attention required: %s. Consult a physician.", strings.Join(flags, ", "))
}
