package fuzzy

import "image-enhancer/internal/config"

// Memberships are the degrees to which an intensity belongs to each zone.
type Memberships struct {
	Dark   float64
	Gray   float64
	Bright float64
}

// Model evaluates the three membership functions over the configured
// thresholds. Boundaries are inclusive on the left zone (i <= t). A transition
// whose endpoints coincide has no interior, so it acts as a hard step and is
// never divided by its zero width.
type Model struct {
	thresholds config.Membership
	weights    config.Weights
}

func NewModel(thresholds config.Membership, weights config.Weights) *Model {
	return &Model{thresholds: thresholds, weights: weights}
}

func (m *Model) Dark(intensity int) float64 {
	i := float64(intensity)
	t := m.thresholds

	switch {
	case i <= t.Dark:
		return 1.0
	case i <= t.GrayLow:
		return (t.GrayLow - i) / (t.GrayLow - t.Dark)
	default:
		return 0.0
	}
}

func (m *Model) Gray(intensity int) float64 {
	i := float64(intensity)
	t := m.thresholds

	switch {
	case i <= t.Dark:
		return 0.0
	case i <= t.GrayLow:
		return (i - t.Dark) / (t.GrayLow - t.Dark)
	case i <= t.GrayHigh:
		return 1.0
	case i <= t.Bright:
		return (t.Bright - i) / (t.Bright - t.GrayHigh)
	default:
		return 0.0
	}
}

func (m *Model) Bright(intensity int) float64 {
	i := float64(intensity)
	t := m.thresholds

	switch {
	case i <= t.GrayHigh:
		return 0.0
	case i <= t.Bright:
		return (i - t.GrayHigh) / (t.Bright - t.GrayHigh)
	default:
		return 1.0
	}
}

func (m *Model) Evaluate(intensity int) Memberships {
	return Memberships{
		Dark:   m.Dark(intensity),
		Gray:   m.Gray(intensity),
		Bright: m.Bright(intensity),
	}
}

// Blend is the membership-weighted mean of the zone weights. With no
// membership at all it returns 1, leaving the intensity unchanged.
func (m *Model) Blend(ms Memberships) float64 {
	total := ms.Dark + ms.Gray + ms.Bright
	if total == 0 {
		return 1.0
	}

	w := m.weights
	return (ms.Dark*w.Dark + ms.Gray*w.Gray + ms.Bright*w.Bright) / total
}

// Enhance maps one intensity to its output value.
func (m *Model) Enhance(intensity int) uint8 {
	v := int(float64(intensity) * m.Blend(m.Evaluate(intensity)))
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
