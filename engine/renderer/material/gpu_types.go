package material

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUPointsMaterialSource is the canonical WGSL definition of the PointsMaterial struct.
// Matches GPUPointsMaterial layout exactly (48 bytes, std430 aligned).
//
//go:embed assets/points_material.wgsl
var GPUPointsMaterialSource string

const (
	// PointsFlagSizeAttenuation scales star size by scale / view depth.
	PointsFlagSizeAttenuation uint32 = 1 << 0

	// PointsFlagVertexColors multiplies the tint by the per-star color.
	PointsFlagVertexColors uint32 = 1 << 1
)

// GPUPointsMaterial is the GPU-aligned uniform shared by the star vertex and fragment shaders.
// Size: 48 bytes (std430 aligned).
type GPUPointsMaterial struct {
	Color    [4]float32 // offset  0: RGB tint and opacity (16 bytes)
	Size     float32    // offset 16: star size multiplied by the pixel ratio (4 bytes)
	Scale    float32    // offset 20: half the viewport height in screen coordinates (4 bytes)
	Viewport [2]float32 // offset 24: framebuffer width and height in pixels (8 bytes)
	Flags    uint32     // offset 32: PointsFlag bit set (4 bytes)
	_pad     [3]uint32  // offset 36: padding to 48 bytes (12 bytes)
}

// Size returns the size of the GPUPointsMaterial struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUPointsMaterial) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUPointsMaterial struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload.
func (g *GPUPointsMaterial) Marshal() []byte {
	buf := make([]byte, 48)
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Color[i]))
	}
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Size))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Scale))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.Viewport[0]))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.Viewport[1]))
	binary.LittleEndian.PutUint32(buf[32:36], g.Flags)
	return buf
}
