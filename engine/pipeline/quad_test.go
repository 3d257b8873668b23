package pipeline

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestQuadsToBytes_FieldOrderAndSize verifies the round-trip law from §8: the
// 32-byte on-buffer representation matches field order x,y,w,h,r,g,b,a as
// little-endian float32, bit-exactly.
func TestQuadsToBytes_FieldOrderAndSize(t *testing.T) {
	q := Quad{
		X: 1.0, Y: 2.0, W: 3.0, H: 4.0,
		Color: Color{R: 5.0, G: 6.0, B: 7.0, A: 8.0},
	}

	bytes := QuadsToBytes([]Quad{q})
	require.Len(t, bytes, QuadSize)

	want := []float32{1, 2, 3, 4, 5, 6, 7, 8}
	for i, w := range want {
		got := math.Float32frombits(binary.LittleEndian.Uint32(bytes[i*4 : i*4+4]))
		require.Equal(t, w, got, "field %d", i)
	}
}

func TestQuadsToBytes_MultipleQuadsConcatenate(t *testing.T) {
	quads := []Quad{
		{X: 1, Color: Color{R: 1}},
		{X: 2, Color: Color{R: 2}},
	}
	bytes := QuadsToBytes(quads)
	require.Len(t, bytes, 2*QuadSize)

	firstX := math.Float32frombits(binary.LittleEndian.Uint32(bytes[0:4]))
	secondX := math.Float32frombits(binary.LittleEndian.Uint32(bytes[QuadSize : QuadSize+4]))
	require.Equal(t, float32(1), firstX)
	require.Equal(t, float32(2), secondX)
}

func TestQuadsToBytes_Empty(t *testing.T) {
	require.Empty(t, QuadsToBytes(nil))
}
