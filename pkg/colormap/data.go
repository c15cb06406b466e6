package colormap

// A curve is one channel of a colormap: (x, y) breakpoints with x running
// from 0 to 1, linear in between.
type curve []struct{ x, y float64 }

type segments struct {
	red, green, blue curve
}

func (c curve) at(x float64) float64 {
	for i := 1; i < len(c); i++ {
		if x <= c[i].x {
			p0, p1 := c[i-1], c[i]
			return p0.y + (x-p0.x)/(p1.x-p0.x)*(p1.y-p0.y)
		}
	}
	return c[len(c)-1].y
}

var segmentData = map[string]segments{
	"gray": {
		red:   curve{{0, 0}, {1, 1}},
		green: curve{{0, 0}, {1, 1}},
		blue:  curve{{0, 0}, {1, 1}},
	},

	"hot": {
		red:   curve{{0, 0.0416}, {0.365079, 1}, {1, 1}},
		green: curve{{0, 0}, {0.365079, 0}, {0.746032, 1}, {1, 1}},
		blue:  curve{{0, 0}, {0.746032, 0}, {1, 1}},
	},

	"jet": {
		red:   curve{{0, 0}, {0.35, 0}, {0.66, 1}, {0.89, 1}, {1, 0.5}},
		green: curve{{0, 0}, {0.125, 0}, {0.375, 1}, {0.64, 1}, {0.91, 0}, {1, 0}},
		blue:  curve{{0, 0.5}, {0.11, 1}, {0.34, 1}, {0.65, 0}, {1, 0}},
	},

	"nipy_spectral": {
		red: curve{
			{0.00, 0}, {0.05, 0.4667}, {0.10, 0.5333}, {0.15, 0}, {0.20, 0},
			{0.25, 0}, {0.30, 0}, {0.35, 0}, {0.40, 0}, {0.45, 0},
			{0.50, 0}, {0.55, 0}, {0.60, 0}, {0.65, 0.7333}, {0.70, 0.9333},
			{0.75, 1}, {0.80, 1}, {0.85, 1}, {0.90, 0.8667}, {0.95, 0.80},
			{1.00, 0.80},
		},
		green: curve{
			{0.00, 0}, {0.05, 0}, {0.10, 0}, {0.15, 0}, {0.20, 0},
			{0.25, 0.4667}, {0.30, 0.6000}, {0.35, 0.6667}, {0.40, 0.6667}, {0.45, 0.6000},
			{0.50, 0.7333}, {0.55, 0.8667}, {0.60, 1}, {0.65, 1}, {0.70, 0.9333},
			{0.75, 0.8000}, {0.80, 0.6000}, {0.85, 0}, {0.90, 0}, {0.95, 0},
			{1.00, 0.80},
		},
		blue: curve{
			{0.00, 0}, {0.05, 0.5333}, {0.10, 0.6000}, {0.15, 0.6667}, {0.20, 0.8667},
			{0.25, 0.8667}, {0.30, 0.8667}, {0.35, 0.6667}, {0.40, 0.5333}, {0.45, 0},
			{0.50, 0}, {0.55, 0}, {0.60, 0}, {0.65, 0}, {0.70, 0},
			{0.75, 0}, {0.80, 0}, {0.85, 0}, {0.90, 0}, {0.95, 0},
			{1.00, 0.80},
		},
	},
}
