package codec

import (
	"github.com/mrjoshuak/go-yuvblock/internal/colormath"
	"github.com/mrjoshuak/go-yuvblock/internal/grid"
)

// BlockGrid is a (W/2) x (H/2) grid of codewords — the compressed form
// of an image. W and H are the post-trim pixel dimensions, not the block
// grid's own (half-sized) dimensions.
type BlockGrid struct {
	W, H  int
	Words *grid.Grid[Codeword]
}

func normalizeRGB(img *Image) *grid.Grid[colormath.RGB] {
	denom := float32(img.Denom)
	return grid.Map(img.Pix, func(_, _ int, p Pixel) colormath.RGB {
		rgb := colormath.RGB{
			R: float32(p.R) / denom,
			G: float32(p.G) / denom,
			B: float32(p.B) / denom,
		}
		return colormath.RGB{
			R: clamp01(rgb.R),
			G: clamp01(rgb.G),
			B: clamp01(rgb.B),
		}
	})
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func rgbToYPbPr(norm *grid.Grid[colormath.RGB]) *grid.Grid[colormath.YPbPr] {
	return grid.Map(norm, func(_, _ int, p colormath.RGB) colormath.YPbPr {
		return colormath.ToYPbPr(p)
	})
}

// ypbprToBlocks reads the four pixels of each 2x2 block at image
// positions (2I,2J), (2I+1,2J), (2I,2J+1), (2I+1,2J+1), row-major within
// the block, and produces the (W/2)x(H/2) grid of block tuples.
func ypbprToBlocks(px *grid.Grid[colormath.YPbPr]) *grid.Grid[colormath.BlockTuple] {
	bw, bh := px.Width()/2, px.Height()/2
	out := grid.New[colormath.BlockTuple](bw, bh)
	for j := 0; j < bh; j++ {
		for i := 0; i < bw; i++ {
			p1 := px.Get(2*i, 2*j)
			p2 := px.Get(2*i+1, 2*j)
			p3 := px.Get(2*i, 2*j+1)
			p4 := px.Get(2*i+1, 2*j+1)
			pbAvg := (p1.Pb + p2.Pb + p3.Pb + p4.Pb) / 4
			prAvg := (p1.Pr + p2.Pr + p3.Pr + p4.Pr) / 4
			out.Set(i, j, colormath.ForwardBlock(p1.Y, p2.Y, p3.Y, p4.Y, pbAvg, prAvg))
		}
	}
	return out
}

func quantizeBlocks(blocks *grid.Grid[colormath.BlockTuple]) *grid.Grid[QuantizedTuple] {
	return grid.Map(blocks, func(_, _ int, t colormath.BlockTuple) QuantizedTuple {
		return QuantizedTuple{
			A:     colormath.QuantizeA(t.A),
			B:     colormath.QuantizeBCD(t.B),
			C:     colormath.QuantizeBCD(t.C),
			D:     colormath.QuantizeBCD(t.D),
			PbIdx: uint8(colormath.ChromaToIndex(t.PbAvg)),
			PrIdx: uint8(colormath.ChromaToIndex(t.PrAvg)),
		}
	})
}

func packWords(quantized *grid.Grid[QuantizedTuple]) *grid.Grid[Codeword] {
	return grid.Map(quantized, func(_, _ int, q QuantizedTuple) Codeword {
		return Pack(q)
	})
}

// Compress runs the full compression chain: trim, normalize_rgb,
// rgb_to_ypbpr, ypbpr_to_dct_blocks, quantize_blocks, pack_words.
func Compress(img *Image) *BlockGrid {
	trimmed := Trim(img)
	norm := normalizeRGB(trimmed)
	ypbpr := rgbToYPbPr(norm)
	blocks := ypbprToBlocks(ypbpr)
	quantized := quantizeBlocks(blocks)
	words := packWords(quantized)
	return &BlockGrid{
		W:     trimmed.Width(),
		H:     trimmed.Height(),
		Words: words,
	}
}

func unpackWords(words *grid.Grid[Codeword]) *grid.Grid[QuantizedTuple] {
	return grid.Map(words, func(_, _ int, cw Codeword) QuantizedTuple {
		return Unpack(cw)
	})
}

func dequantizeBlocks(quantized *grid.Grid[QuantizedTuple]) *grid.Grid[colormath.BlockTuple] {
	return grid.Map(quantized, func(_, _ int, q QuantizedTuple) colormath.BlockTuple {
		return colormath.BlockTuple{
			A:     colormath.DequantizeA(q.A),
			B:     colormath.DequantizeBCD(q.B),
			C:     colormath.DequantizeBCD(q.C),
			D:     colormath.DequantizeBCD(q.D),
			PbAvg: colormath.IndexToChroma(int(q.PbIdx)),
			PrAvg: colormath.IndexToChroma(int(q.PrIdx)),
		}
	})
}

// blocksToYPbPr is the reverse of ypbprToBlocks: for each block it
// reconstructs the four luma samples and broadcasts the single averaged
// chroma pair to all four pixel positions, writing the same quad
// ypbprToBlocks read.
func blocksToYPbPr(blocks *grid.Grid[colormath.BlockTuple]) *grid.Grid[colormath.YPbPr] {
	bw, bh := blocks.Width(), blocks.Height()
	out := grid.New[colormath.YPbPr](bw*2, bh*2)
	for j := 0; j < bh; j++ {
		for i := 0; i < bw; i++ {
			t := blocks.Get(i, j)
			y1, y2, y3, y4 := colormath.InverseBlock(t)
			out.Set(2*i, 2*j, colormath.YPbPr{Y: y1, Pb: t.PbAvg, Pr: t.PrAvg})
			out.Set(2*i+1, 2*j, colormath.YPbPr{Y: y2, Pb: t.PbAvg, Pr: t.PrAvg})
			out.Set(2*i, 2*j+1, colormath.YPbPr{Y: y3, Pb: t.PbAvg, Pr: t.PrAvg})
			out.Set(2*i+1, 2*j+1, colormath.YPbPr{Y: y4, Pb: t.PbAvg, Pr: t.PrAvg})
		}
	}
	return out
}

func ypbprToRGB(px *grid.Grid[colormath.YPbPr]) *grid.Grid[colormath.RGB] {
	return grid.Map(px, func(_, _ int, p colormath.YPbPr) colormath.RGB {
		return colormath.ToRGB(p)
	})
}

// denormalizeRGB maps normalized RGB back to raw channel values scaled
// to denom 255, the fixed output denominator for decompression.
func denormalizeRGB(norm *grid.Grid[colormath.RGB], denom uint16) *Image {
	img, err := NewImage(norm.Width(), norm.Height(), denom)
	if err != nil {
		// denom is the caller-supplied output denominator (255), always valid.
		panic(err)
	}
	d := float32(denom)
	for row := 0; row < norm.Height(); row++ {
		for col := 0; col < norm.Width(); col++ {
			p := norm.Get(col, row)
			img.Pix.Set(col, row, Pixel{
				R: uint16(p.R*d + 0.5),
				G: uint16(p.G*d + 0.5),
				B: uint16(p.B*d + 0.5),
			})
		}
	}
	return img
}

// OutputDenom is the fixed per-channel denominator decompression writes,
// decompression always writes a PPM with denominator 255.
const OutputDenom = 255

// Decompress runs the exact reverse chain of Compress.
func Decompress(bg *BlockGrid) *Image {
	quantized := unpackWords(bg.Words)
	blocks := dequantizeBlocks(quantized)
	ypbpr := blocksToYPbPr(blocks)
	rgb := ypbprToRGB(ypbpr)
	return denormalizeRGB(rgb, OutputDenom)
}
