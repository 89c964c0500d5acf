package seq

import (
	"fmt"
	"time"
)

// Months returns count month names starting at January and cycling after
// December. A positive section truncates every name to that many letters.
func Months(count, section int) []string {
	labels := make([]string, 0, max(count, 0))
	for i := range max(count, 0) {
		name := time.Month(i%12 + 1).String()
		if section > 0 && section < len(name) {
			name = name[:section]
		}
		labels = append(labels, name)
	}
	return labels
}

// Point is a labelled sample.
type Point struct {
	Label  string `json:"label"`
	Sample Sample `json:"value"`
}

// Points draws a series and labels every sample. There must be at least
// cfg.Count labels.
func (g *Generator) Points(cfg SeriesConfig, labels []string) ([]Point, error) {
	if len(labels) < cfg.Count {
		return nil, fmt.Errorf("%w: %d labels for %d samples", ErrInvalidConfig, len(labels), cfg.Count)
	}
	samples, err := g.Series(cfg)
	if err != nil {
		return nil, err
	}
	points := make([]Point, len(samples))
	for i, s := range samples {
		points[i] = Point{Label: labels[i], Sample: s}
	}
	return points, nil
}
