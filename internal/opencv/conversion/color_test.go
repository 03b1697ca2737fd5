package conversion

import (
	"testing"

	"image-enhancer/internal/opencv/safe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

// bgr builds a 1-row BGR Mat from RGB triples.
func bgr(t *testing.T, rgb ...[3]uint8) *safe.Mat {
	t.Helper()

	data := make([]byte, 0, len(rgb)*3)
	for _, p := range rgb {
		data = append(data, p[2], p[1], p[0])
	}

	mat, err := safe.NewMatFromBytes(1, len(rgb), gocv.MatTypeCV8UC3, data)
	require.NoError(t, err)
	t.Cleanup(mat.Close)
	return mat
}

func TestLumaTruncates(t *testing.T) {
	mat := bgr(t,
		[3]uint8{255, 0, 0},
		[3]uint8{0, 255, 0},
		[3]uint8{0, 0, 255},
		[3]uint8{255, 255, 255},
		[3]uint8{100, 100, 100},
		[3]uint8{1, 1, 1},
		[3]uint8{8, 8, 8},
		[3]uint8{127, 127, 127},
	)

	levels, err := Luma(mat)
	require.NoError(t, err)
	// 76.245, 149.685, 29.07, 255, 100; the grays 1, 8 and 127 sum to just
	// under their value in float64
	assert.Equal(t, []uint8{76, 149, 29, 255, 100, 0, 7, 126}, levels)
}

func TestMeanIntensityUsesIntegerDivision(t *testing.T) {
	mat := bgr(t,
		[3]uint8{255, 0, 0},
		[3]uint8{10, 10, 11},
		[3]uint8{255, 255, 255},
	)

	levels, err := MeanIntensity(mat)
	require.NoError(t, err)
	assert.Equal(t, []uint8{85, 10, 255}, levels)
}

func TestLumaRejectsSingleChannel(t *testing.T) {
	gray, err := safe.NewMat(2, 2, gocv.MatTypeCV8UC1)
	require.NoError(t, err)
	defer gray.Close()

	_, err = Luma(gray)
	assert.Error(t, err)
}

func TestGrayToBGRReplicatesChannels(t *testing.T) {
	levels := []uint8{0, 63, 127, 255}

	mat, err := GrayToBGR(levels, 2, 2)
	require.NoError(t, err)
	defer mat.Close()

	assert.Equal(t, 3, mat.Channels())
	data, err := mat.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 63, 63, 63, 127, 127, 127, 255, 255, 255}, data)
}
