// Package histogram holds the 256-bin intensity histogram and the tables
// derived from it. Every value is rebuilt from scratch per call.
package histogram

const Bins = 256

// Histogram counts pixels per 8-bit intensity.
type Histogram [Bins]int

// Cumulative is the prefix sum of a Histogram. It is non-decreasing and its
// last entry equals the pixel count.
type Cumulative [Bins]int

// LookupTable maps an input intensity to an output intensity.
type LookupTable [Bins]uint8

func Compute(levels []uint8) Histogram {
	var h Histogram
	for _, v := range levels {
		h[v]++
	}
	return h
}

func (h Histogram) Total() int {
	total := 0
	for _, c := range h {
		total += c
	}
	return total
}

func (h Histogram) Max() int {
	peak := 0
	for _, c := range h {
		if c > peak {
			peak = c
		}
	}
	return peak
}

func (h Histogram) Cumulative() Cumulative {
	var c Cumulative
	c[0] = h[0]
	for i := 1; i < Bins; i++ {
		c[i] = c[i-1] + h[i]
	}
	return c
}

func (c Cumulative) Total() int {
	return c[Bins-1]
}

// LookupTable builds the equalization mapping trunc(C[i]/total * 255),
// computed in float32 and clamped to [0,255]. An empty histogram maps
// everything to 0.
func (c Cumulative) LookupTable() LookupTable {
	var lut LookupTable

	total := c.Total()
	if total == 0 {
		return lut
	}

	for i, v := range c {
		mapped := int(float32(v) / float32(total) * 255.0)
		lut[i] = clamp(mapped)
	}
	return lut
}

// Normalized returns C[i]/total, the empirical distribution function.
func (c Cumulative) Normalized() []float64 {
	out := make([]float64, Bins)

	total := c.Total()
	if total == 0 {
		return out
	}

	for i, v := range c {
		out[i] = float64(v) / float64(total)
	}
	return out
}

// Apply maps every level through the table.
func (l LookupTable) Apply(levels []uint8) []uint8 {
	out := make([]uint8, len(levels))
	for i, v := range levels {
		out[i] = l[v]
	}
	return out
}

func clamp(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
