package dashboard

import (
	"github.com/jwulff/biomon-go/internal/render"
	"github.com/jwulff/biomon-go/internal/trend"
)

// Frame renders the current state as a pixel frame.
func (d *Dashboard) Frame() *render.Canvas {
	s := d.Series()
	tr, _ := trend.Compute(s)
	return render.Compose(render.Data{
		Time:     d.clock.Now(),
		Location: d.loc,
		Series:   s,
		Lines:    d.VisibleKinds(),
		Trends:   tr,
		Critical: d.alerts.Count() > 0,
	})
}
