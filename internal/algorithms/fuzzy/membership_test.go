package fuzzy

import (
	"testing"

	"image-enhancer/internal/config"

	"github.com/stretchr/testify/assert"
)

func defaultModel() *Model {
	cfg := config.DefaultConfig()
	return NewModel(cfg.Enhancement.Membership, cfg.Enhancement.Weights)
}

func TestBoundariesWithCoincidentThresholds(t *testing.T) {
	m := defaultModel()

	tests := []struct {
		intensity int
		want      Memberships
	}{
		{0, Memberships{Dark: 1}},
		{75, Memberships{Dark: 1}},
		{76, Memberships{Gray: 1}},
		{150, Memberships{Gray: 1}},
		{151, Memberships{Bright: 1}},
		{255, Memberships{Bright: 1}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, m.Evaluate(tt.intensity), "intensity %d", tt.intensity)
	}
}

func TestMembershipsAlwaysCoverTheDomain(t *testing.T) {
	models := []*Model{
		defaultModel(),
		NewModel(config.Membership{Dark: 50, GrayLow: 100, GrayHigh: 150, Bright: 200}, config.Weights{Dark: 1.5, Gray: 1.2, Bright: 0.9}),
	}

	for _, m := range models {
		for i := 0; i < 256; i++ {
			ms := m.Evaluate(i)
			assert.InDelta(t, 1.0, ms.Dark+ms.Gray+ms.Bright, 1e-9, "intensity %d", i)
			for _, v := range []float64{ms.Dark, ms.Gray, ms.Bright} {
				assert.GreaterOrEqual(t, v, 0.0)
				assert.LessOrEqual(t, v, 1.0)
			}
		}
	}
}

func TestLinearTransitions(t *testing.T) {
	m := NewModel(
		config.Membership{Dark: 50, GrayLow: 100, GrayHigh: 150, Bright: 200},
		config.Weights{Dark: 1.5, Gray: 1.2, Bright: 0.9},
	)

	ms := m.Evaluate(75)
	assert.InDelta(t, 0.5, ms.Dark, 1e-12)
	assert.InDelta(t, 0.5, ms.Gray, 1e-12)
	assert.Zero(t, ms.Bright)

	ms = m.Evaluate(190)
	assert.Zero(t, ms.Dark)
	assert.InDelta(t, 0.2, ms.Gray, 1e-12)
	assert.InDelta(t, 0.8, ms.Bright, 1e-12)

	assert.InDelta(t, 1.35, m.Blend(m.Evaluate(75)), 1e-12)
}

func TestBlendFallsBackToPassThrough(t *testing.T) {
	m := defaultModel()
	assert.Equal(t, 1.0, m.Blend(Memberships{}))
}

func TestBlendUsesZoneWeights(t *testing.T) {
	m := defaultModel()
	assert.Equal(t, 1.5, m.Blend(Memberships{Dark: 1}))
	assert.Equal(t, 1.2, m.Blend(Memberships{Gray: 1}))
	assert.Equal(t, 0.9, m.Blend(Memberships{Bright: 1}))
}

func TestEnhance(t *testing.T) {
	m := defaultModel()

	tests := map[int]uint8{
		0:   0,
		60:  90,
		75:  112,
		100: 120,
		150: 180,
		151: 135,
		200: 180,
		255: 229,
	}

	for in, want := range tests {
		assert.Equal(t, want, m.Enhance(in), "intensity %d", in)
	}
}

func TestEnhanceClampsHighGain(t *testing.T) {
	m := NewModel(config.DefaultConfig().Enhancement.Membership, config.Weights{Dark: 5, Gray: 5, Bright: 5})
	assert.EqualValues(t, 255, m.Enhance(200))
}
