package model

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUStarInstanceSource is the canonical WGSL definition of the StarInstance vertex input struct.
// The Instance suffix makes the shader parser step this buffer once per instance.
// Matches GPUStarInstance layout exactly (24 bytes, tightly packed vertex attributes).
//
//go:embed assets/star_instance.wgsl
var GPUStarInstanceSource string

// GPUStarInstance is the per-instance vertex data for one star billboard.
// Size: 24 bytes.
type GPUStarInstance struct {
	Position [3]float32 // offset  0: world-space star position (12 bytes)
	Color    [3]float32 // offset 12: linear RGB color, white when the cloud has no colors (12 bytes)
}

// Size returns the size of the GPUStarInstance struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUStarInstance) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUStarInstance struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 24-byte buffer ready for GPU upload.
func (g *GPUStarInstance) Marshal() []byte {
	buf := make([]byte, 24)
	g.marshalInto(buf)
	return buf
}

func (g *GPUStarInstance) marshalInto(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Color[0]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Color[1]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Color[2]))
}
