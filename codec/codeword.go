package codec

import "github.com/mrjoshuak/go-yuvblock/internal/bitpack"

// Codeword is the 32-bit packed representation of one 2x2 block, laid
// out MSB to LSB as:
//
//	bits 31..23 : A        (9 bits, unsigned)
//	bits 22..18 : B        (5 bits, signed)
//	bits 17..13 : C        (5 bits, signed)
//	bits 12..8  : D        (5 bits, signed)
//	bits  7..4  : Pb_idx   (4 bits, unsigned)
//	bits  3..0  : Pr_idx   (4 bits, unsigned)
type Codeword uint32

// QuantizedTuple is the pre-packing quantized form of one block's
// coefficients.
type QuantizedTuple struct {
	A            uint32
	B, C, D      int32
	PbIdx, PrIdx uint8
}

const (
	lsbA     = 23
	widthA   = 9
	lsbB     = 18
	widthB   = 5
	lsbC     = 13
	widthC   = 5
	lsbD     = 8
	widthD   = 5
	lsbPbIdx = 4
	widthPb  = 4
	lsbPrIdx = 0
	widthPr  = 4
)

// Pack bit-packs a quantized tuple into a codeword.
//
// Every field here fits by construction of the quantize stage: A in
// [0,511] (9 bits), B/C/D in [-15,15] (5 bits signed), Pb_idx/Pr_idx in
// [0,15] (4 bits). A mismatch is a programmer error and bitpack panics.
func Pack(t QuantizedTuple) Codeword {
	var word uint64
	word = bitpack.NewU(word, widthA, lsbA, uint64(t.A))
	word = bitpack.NewS(word, widthB, lsbB, int64(t.B))
	word = bitpack.NewS(word, widthC, lsbC, int64(t.C))
	word = bitpack.NewS(word, widthD, lsbD, int64(t.D))
	word = bitpack.NewU(word, widthPb, lsbPbIdx, uint64(t.PbIdx))
	word = bitpack.NewU(word, widthPr, lsbPrIdx, uint64(t.PrIdx))
	return Codeword(word)
}

// Unpack reverses Pack.
func Unpack(cw Codeword) QuantizedTuple {
	word := uint64(cw)
	return QuantizedTuple{
		A:     uint32(bitpack.GetU(word, widthA, lsbA)),
		B:     int32(bitpack.GetS(word, widthB, lsbB)),
		C:     int32(bitpack.GetS(word, widthC, lsbC)),
		D:     int32(bitpack.GetS(word, widthD, lsbD)),
		PbIdx: uint8(bitpack.GetU(word, widthPb, lsbPbIdx)),
		PrIdx: uint8(bitpack.GetU(word, widthPr, lsbPrIdx)),
	}
}
