// Package codec implements the compression pipeline: the stage-by-stage
// chain from a raw pixel grid down to packed 32-bit codewords, and its
// exact reverse.
//
// Every stage is a pure map over a grid.Grid: it allocates a new grid
// sized from its input, fills it by visiting every cell, and never
// mutates the grid it was given. The caller owns both grids and is free
// to discard the input once the stage returns. The one exception is Trim,
// which returns its input unchanged when both dimensions are already even.
package codec

import (
	"fmt"

	"github.com/mrjoshuak/go-yuvblock/internal/grid"
)

// Pixel is one raw RGB sample with channel values in [0, Denom].
type Pixel struct {
	R, G, B uint16
}

// Image is a raw pixel grid plus the shared per-channel denominator that
// defines how a raw channel value maps to [0, 1].
type Image struct {
	Denom uint16
	Pix   *grid.Grid[Pixel]
}

// ErrInvalidDenom reports a denominator outside the wire format's range.
var ErrInvalidDenom = fmt.Errorf("codec: denominator must be in [1, 65535]")

// NewImage constructs a width x height raw image with the given channel
// denominator. It returns ErrInvalidDenom if denom is zero or exceeds
// 65535 (the PPM denominator ceiling) — a data error, since a
// malformed input file is the only way to produce one.
func NewImage(w, h int, denom uint16) (*Image, error) {
	if denom == 0 {
		return nil, ErrInvalidDenom
	}
	return &Image{Denom: denom, Pix: grid.New[Pixel](w, h)}, nil
}

// Width returns the image width in pixels.
func (img *Image) Width() int { return img.Pix.Width() }

// Height returns the image height in pixels.
func (img *Image) Height() int { return img.Pix.Height() }

// Trim drops the last column and/or row so both dimensions are even.
// This is the only lossy step outside quantization.
func Trim(img *Image) *Image {
	w, h := img.Width(), img.Height()
	w -= w % 2
	h -= h % 2
	if w == img.Width() && h == img.Height() {
		return img
	}
	out := grid.New[Pixel](w, h)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			out.Set(col, row, img.Pix.Get(col, row))
		}
	}
	return &Image{Denom: img.Denom, Pix: out}
}
