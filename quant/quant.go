// Package quant provides the quantization helpers used to prepare vertex
// attribute streams for encoding: axis-aligned offset/scale derivation for
// positions and UVs, the safe reciprocal, and fixed-point unorm conversion.
//
// The offset/scale pair maps raw attribute values into [0, scale] relative to
// the offset, so attributes can be quantized into fixed-width integer records
// before vertex encoding. The pair must be persisted alongside the encoded
// blob (typically in a container header); it is not recoverable from the blob
// itself.
package quant

import "math"

// RcpSafe returns 1/v, defined as 0 when v is 0.
//
// Multiply-based dequantization then degenerates gracefully for single-point
// or zero-extent data instead of propagating NaN or Inf.
func RcpSafe(v float32) float32 {
	if v == 0 {
		return 0
	}

	return 1 / v
}

// CalcPosOffsetAndScale computes the component-wise minimum of a flat
// sequence of 3-component positions and a single uniform scale equal to the
// maximum, over all points and axes, of value-offset[axis].
//
// A uniform scale preserves relative proportions so quantized positions
// dequantize with one multiply. Positions must contain at least one complete
// 3-float group; a trailing partial group is ignored. An empty input is a
// contract violation and yields the fold seeds (offset at math.MaxFloat32,
// scale 0) rather than an error.
func CalcPosOffsetAndScale(positions []float32) ([3]float32, float32) {
	offset := [3]float32{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	for i := 0; i+2 < len(positions); i += 3 {
		offset[0] = min(offset[0], positions[i])
		offset[1] = min(offset[1], positions[i+1])
		offset[2] = min(offset[2], positions[i+2])
	}

	var scale float32
	for i := 0; i+2 < len(positions); i += 3 {
		scale = max(scale, positions[i]-offset[0])
		scale = max(scale, positions[i+1]-offset[1])
		scale = max(scale, positions[i+2]-offset[2])
	}

	return offset, scale
}

// CalcPosOffsetAndScaleInverse is CalcPosOffsetAndScale with the scale
// replaced by its safe reciprocal, ready for multiply-based quantization.
func CalcPosOffsetAndScaleInverse(positions []float32) ([3]float32, float32) {
	offset, scale := CalcPosOffsetAndScale(positions)
	return offset, RcpSafe(scale)
}

// CalcUVOffsetAndScale computes the component-wise minimum and per-axis scale
// of a flat sequence of 2-component UV coordinates.
//
// Unlike positions, UV axes are independent and not required to preserve
// aspect ratio, so the scale is per-axis. The same precondition as
// CalcPosOffsetAndScale applies: at least one complete 2-float group.
func CalcUVOffsetAndScale(coords []float32) ([2]float32, [2]float32) {
	offset := [2]float32{math.MaxFloat32, math.MaxFloat32}
	for i := 0; i+1 < len(coords); i += 2 {
		offset[0] = min(offset[0], coords[i])
		offset[1] = min(offset[1], coords[i+1])
	}

	var scale [2]float32
	for i := 0; i+1 < len(coords); i += 2 {
		scale[0] = max(scale[0], coords[i]-offset[0])
		scale[1] = max(scale[1], coords[i+1]-offset[1])
	}

	return offset, scale
}

// CalcUVOffsetAndScaleInverse is CalcUVOffsetAndScale with each axis scale
// replaced by its safe reciprocal.
func CalcUVOffsetAndScaleInverse(coords []float32) ([2]float32, [2]float32) {
	offset, scale := CalcUVOffsetAndScale(coords)
	return offset, [2]float32{RcpSafe(scale[0]), RcpSafe(scale[1])}
}

// QuantizeUnorm converts a value in [0, 1] to an integer with the given
// number of bits of precision, rounding to nearest. Values outside [0, 1] are
// clamped.
func QuantizeUnorm(v float32, bits int) int {
	scale := float32(int(1)<<bits - 1)

	switch {
	case v >= 1:
		v = 1
	case v <= 0 || v != v: // clamp negatives and NaN
		v = 0
	}

	return int(v*scale + 0.5)
}

// DequantizeUnorm converts a QuantizeUnorm result back to a float in [0, 1].
func DequantizeUnorm(q, bits int) float32 {
	return float32(q) / float32(int(1)<<bits-1)
}
