// Package colormath implements the pure numeric transforms of the codec:
// RGB<->YPbPr pixel conversion, the 2x2 block DCT and its inverse, and
// quantize/dequantize. Every exported function is a pure function over
// IEEE-754 single-precision floats or the fixed-point integers derived
// from them; none of them allocate or fail.
//
// All outputs are clamped to their documented range after computation, to
// defend against floating-point drift accumulating across stages.
package colormath

import "math"

func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// RGB is a normalized pixel with channels in [0, 1].
type RGB struct {
	R, G, B float32
}

// YPbPr is a luminance/chrominance pixel. Y is in [0, 1]; Pb and Pr are in
// [-0.5, 0.5].
type YPbPr struct {
	Y, Pb, Pr float32
}

// ToYPbPr converts a normalized RGB pixel to YPbPr using the ITU-R BT.601
// coefficients this codec is defined against.
func ToYPbPr(p RGB) YPbPr {
	y := 0.299*p.R + 0.587*p.G + 0.114*p.B
	pb := -0.168736*p.R - 0.331264*p.G + 0.5*p.B
	pr := 0.5*p.R - 0.418688*p.G - 0.081312*p.B
	return YPbPr{
		Y:  clamp(y, 0, 1),
		Pb: clamp(pb, -0.5, 0.5),
		Pr: clamp(pr, -0.5, 0.5),
	}
}

// ToRGB converts a YPbPr pixel back to normalized RGB.
func ToRGB(p YPbPr) RGB {
	r := p.Y + 1.402*p.Pr
	g := p.Y - 0.344136*p.Pb - 0.714136*p.Pr
	b := p.Y + 1.772*p.Pb
	return RGB{
		R: clamp(r, 0, 1),
		G: clamp(g, 0, 1),
		B: clamp(b, 0, 1),
	}
}

// BlockTuple holds the six coefficients describing one 2x2 block: the
// 2x2 luma DCT (A, B, C, D) and the averaged chroma (PbAvg, PrAvg).
type BlockTuple struct {
	A, B, C, D   float32
	PbAvg, PrAvg float32
}

// ForwardBlock computes the block tuple from the four luma samples of a
// 2x2 block (row-major: y1 top-left, y2 top-right, y3 bottom-left, y4
// bottom-right) and the average of the block's four Pb/Pr samples.
//
// This ordering is part of the wire contract: decoders must reproduce it
// exactly in InverseBlock.
func ForwardBlock(y1, y2, y3, y4 float32, pbAvg, prAvg float32) BlockTuple {
	a := (y1 + y2 + y3 + y4) / 4
	b := (y4 + y3 - y2 - y1) / 4
	c := (y4 - y3 + y2 - y1) / 4
	d := (y4 - y3 - y2 + y1) / 4
	return BlockTuple{
		A:     clamp(a, 0, 1),
		B:     clamp(b, -0.5, 0.5),
		C:     clamp(c, -0.5, 0.5),
		D:     clamp(d, -0.5, 0.5),
		PbAvg: clamp(pbAvg, -0.5, 0.5),
		PrAvg: clamp(prAvg, -0.5, 0.5),
	}
}

// InverseBlock reconstructs the four luma samples of a 2x2 block from its
// block tuple, in the same row-major order ForwardBlock consumed them.
func InverseBlock(t BlockTuple) (y1, y2, y3, y4 float32) {
	a, b, c, d := t.A, t.B, t.C, t.D
	y1 = clamp(a-b-c+d, 0, 1)
	y2 = clamp(a-b+c-d, 0, 1)
	y3 = clamp(a+b-c-d, 0, 1)
	y4 = clamp(a+b+c+d, 0, 1)
	return y1, y2, y3, y4
}

// Quantize maps x (already scaled to [-denom, denom]) onto a signed
// integer in [-upper, upper]: round((x/denom) * upper).
func Quantize(x, denom, upper float32) int32 {
	return int32(math.Round(float64(x / denom * upper)))
}

// Dequantize is the inverse of Quantize: (q/upper) * denom.
func Dequantize(q int32, denom, upper float32) float32 {
	return (float32(q) / upper) * denom
}

// Quantization ranges for the block tuple, from the wire contract: A is a
// 9-bit unsigned quantity of a value in [0,1]; B, C, D are 5-bit signed
// quantities of a value pre-clamped to [-0.3, 0.3].
const (
	AUpper   = 511
	BCDUpper = 15
	bcdClamp = 0.3
)

// QuantizeA quantizes the block mean luma a in [0,1] to an unsigned value
// in [0, 511].
func QuantizeA(a float32) uint32 {
	return uint32(Quantize(a, 1.0, AUpper))
}

// DequantizeA is the inverse of QuantizeA.
func DequantizeA(q uint32) float32 {
	return Dequantize(int32(q), 1.0, AUpper)
}

// QuantizeBCD quantizes one of b, c, d (clamped to [-0.3, 0.3] first) to a
// signed value in [-15, 15].
func QuantizeBCD(x float32) int32 {
	return Quantize(clamp(x, -bcdClamp, bcdClamp), bcdClamp, BCDUpper)
}

// DequantizeBCD is the inverse of QuantizeBCD.
func DequantizeBCD(q int32) float32 {
	return Dequantize(q, bcdClamp, BCDUpper)
}
