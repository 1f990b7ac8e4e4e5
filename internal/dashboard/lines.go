package dashboard

import "github.com/jwulff/biomon-go/internal/biomarker"

// DefaultLines is the initial chart visibility.
func DefaultLines() map[biomarker.Kind]bool {
	return map[biomarker.Kind]bool{
		biomarker.Troponin:   true,
		biomarker.Glucose:    true,
		biomarker.HbA1c:      false,
		biomarker.Creatinine: true,
		biomarker.ALT:        false,
	}
}

// ToggleLine flips the chart visibility of the named biomarker and returns
// the new state.
func (d *Dashboard) ToggleLine(name string) (bool, error) {
	k, err := biomarker.ParseKind(name)
	if err != nil {
		return false, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lines[k] = !d.lines[k]
	return d.lines[k], nil
}

// Lines returns a copy of the chart visibility map.
func (d *Dashboard) Lines() map[biomarker.Kind]bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make(map[biomarker.Kind]bool, len(d.lines))
	for k, v := range d.lines {
		out[k] = v
	}
	return out
}

// VisibleKinds lists the biomarkers currently drawn, in display order.
func (d *Dashboard) VisibleKinds() []biomarker.Kind {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []biomarker.Kind
	for _, k := range biomarker.Kinds() {
		if d.lines[k] {
			out = append(out, k)
		}
	}
	return out
}
