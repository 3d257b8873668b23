package pipeline

import "github.com/Carmen-Shannon/oxy-go/common"

// Color is a pure RGBA value type, each channel in the 0..1 range.
type Color struct {
	R float32
	G float32
	B float32
	A float32
}

// Quad is a single axis-aligned rectangle instance record. Field order is
// load-bearing: it is uploaded byte-for-byte as the vertex-pulled storage
// array the quad shader indexes by instance_index, so X, Y, W, H, R, G, B, A
// must stay in this order with no padding between them. The struct is
// exactly 32 bytes on every GOARCH this module targets.
type Quad struct {
	X, Y, W, H float32
	Color      Color
}

// QuadSize is the on-GPU byte size of a single Quad record.
const QuadSize = 32

// QuadsToBytes serializes a slice of Quad into its packed GPU wire layout.
// Reuses the teacher's unsafe slice-reinterpret idiom instead of encoding/binary
// since Quad's field layout already matches the little-endian packed contract.
func QuadsToBytes(quads []Quad) []byte {
	return common.SliceToBytes(quads)
}
