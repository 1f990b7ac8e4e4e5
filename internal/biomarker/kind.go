// Package biomarker holds the closed set of monitored biomarkers, their
// units and the clinical threshold table used to classify readings.
package biomarker

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies a monitored biomarker.
type Kind string

const (
	Troponin   Kind = "Troponin"
	Glucose    Kind = "Glucose"
	HbA1c      Kind = "HbA1c"
	Creatinine Kind = "Creatinine"
	ALT        Kind = "ALT"
)

// ErrUnknownKind is returned by ParseKind for names outside the closed set.
var ErrUnknownKind = errors.New("unknown biomarker")

var kinds = []Kind{Troponin, Glucose, HbA1c, Creatinine, ALT}

// Kinds returns every biomarker in display order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// ParseKind converts a case-insensitive name to a Kind.
func ParseKind(name string) (Kind, error) {
	if k := Kind(strings.TrimSpace(name)); k.Valid() {
		return k, nil
	}
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, k := range kinds {
		if strings.ToLower(string(k)) == lower {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Valid reports whether k is one of the known biomarkers.
func (k Kind) Valid() bool {
	_, ok := thresholds[k]
	return ok
}

// Key returns the lowercase field name used in series data ("hba1c", "alt").
func (k Kind) Key() string {
	return strings.ToLower(string(k))
}

// UnitOf returns the display unit for a biomarker, or "" when unknown.
func UnitOf(k Kind) string {
	switch k {
	case Troponin:
		return "ng/mL"
	case Glucose:
		return "mg/dL"
	case HbA1c:
		return "%"
	case Creatinine:
		return "mg/dL"
	case ALT:
		return "U/L"
	default:
		return ""
	}
}

// Precision returns the number of decimals a value of k is displayed with.
func Precision(k Kind) int {
	switch k {
	case Troponin:
		return 3
	case HbA1c:
		return 1
	case Creatinine:
		return 2
	default:
		return 0
	}
}

// DeltaPrecision returns the number of decimals a change in k is shown with.
func DeltaPrecision(k Kind) int {
	switch k {
	case Troponin:
		return 3
	case HbA1c, Creatinine:
		return 2
	default:
		return 0
	}
}
