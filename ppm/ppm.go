// Package ppm reads and writes the Netpbm PPM image container: raw (P6)
// and plain (P3) variants of 24-bit color pixel maps.
//
// The codec consumes and produces a pixel grid plus a denominator, and
// is indifferent to how that grid reached memory; this package is the
// concrete provider of that boundary so the CLI is actually runnable
// end to end.
package ppm

import (
	"bufio"
	"fmt"
	"io"

	"github.com/mrjoshuak/go-yuvblock/codec"
)

// ErrFormat reports a malformed PPM stream: bad magic number, garbled
// header, a denominator above the wire ceiling, or a short pixel read.
var ErrFormat = fmt.Errorf("ppm: malformed PPM stream")

// MaxDenom is the largest channel denominator this package accepts,
// per the PPM container's own channel value ceiling.
const MaxDenom = 65535

// Read parses a PPM image (P6 raw or P3 plain) from r.
func Read(r io.Reader) (*codec.Image, error) {
	br := bufio.NewReader(r)

	magic, err := readToken(br)
	if err != nil {
		return nil, fmt.Errorf("%w: reading magic number: %v", ErrFormat, err)
	}

	w, err := readUintToken(br)
	if err != nil {
		return nil, fmt.Errorf("%w: reading width: %v", ErrFormat, err)
	}
	h, err := readUintToken(br)
	if err != nil {
		return nil, fmt.Errorf("%w: reading height: %v", ErrFormat, err)
	}
	denom, err := readUintToken(br)
	if err != nil {
		return nil, fmt.Errorf("%w: reading denominator: %v", ErrFormat, err)
	}
	if denom == 0 || denom > MaxDenom {
		return nil, fmt.Errorf("%w: denominator %d out of range [1,%d]", ErrFormat, denom, MaxDenom)
	}

	img, err := codec.NewImage(w, h, uint16(denom))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	switch magic {
	case "P6":
		if err := readRawBody(br, img, denom); err != nil {
			return nil, err
		}
	case "P3":
		if err := readPlainBody(br, img); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unsupported magic number %q", ErrFormat, magic)
	}
	return img, nil
}

func readRawBody(br *bufio.Reader, img *codec.Image, denom int) error {
	// Exactly one whitespace byte separates the header from raw pixel
	// data; readUintToken already consumed trailing whitespace up to and
	// including that separator, so the reader is positioned at the
	// first pixel byte.
	bytesPerSample := 1
	if denom > 255 {
		bytesPerSample = 2
	}
	row := make([]byte, img.Width()*3*bytesPerSample)
	for y := 0; y < img.Height(); y++ {
		if _, err := io.ReadFull(br, row); err != nil {
			return fmt.Errorf("%w: short pixel data at row %d: %v", ErrFormat, y, err)
		}
		for x := 0; x < img.Width(); x++ {
			var r, g, b uint16
			if bytesPerSample == 1 {
				r = uint16(row[x*3])
				g = uint16(row[x*3+1])
				b = uint16(row[x*3+2])
			} else {
				i := x * 6
				r = uint16(row[i])<<8 | uint16(row[i+1])
				g = uint16(row[i+2])<<8 | uint16(row[i+3])
				b = uint16(row[i+4])<<8 | uint16(row[i+5])
			}
			img.Pix.Set(x, y, codec.Pixel{R: r, G: g, B: b})
		}
	}
	return nil
}

func readPlainBody(br *bufio.Reader, img *codec.Image) error {
	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			r, err := readUintToken(br)
			if err != nil {
				return fmt.Errorf("%w: short pixel data at row %d: %v", ErrFormat, y, err)
			}
			g, err := readUintToken(br)
			if err != nil {
				return fmt.Errorf("%w: short pixel data at row %d: %v", ErrFormat, y, err)
			}
			b, err := readUintToken(br)
			if err != nil {
				return fmt.Errorf("%w: short pixel data at row %d: %v", ErrFormat, y, err)
			}
			img.Pix.Set(x, y, codec.Pixel{R: uint16(r), G: uint16(g), B: uint16(b)})
		}
	}
	return nil
}

// Write emits img as a raw P6 PPM.
func Write(w io.Writer, img *codec.Image) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n%d\n", img.Width(), img.Height(), img.Denom); err != nil {
		return err
	}
	wide := img.Denom > 255
	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			p := img.Pix.Get(x, y)
			if wide {
				if err := writeBE16(bw, p.R, p.G, p.B); err != nil {
					return err
				}
			} else {
				if _, err := bw.Write([]byte{byte(p.R), byte(p.G), byte(p.B)}); err != nil {
					return err
				}
			}
		}
	}
	return bw.Flush()
}

func writeBE16(bw *bufio.Writer, r, g, b uint16) error {
	_, err := bw.Write([]byte{
		byte(r >> 8), byte(r),
		byte(g >> 8), byte(g),
		byte(b >> 8), byte(b),
	})
	return err
}

// readToken reads a whitespace-delimited token, skipping '#' comments
// that run to end of line, per the PPM header grammar.
func readToken(br *bufio.Reader) (string, error) {
	if err := skipWhitespaceAndComments(br); err != nil {
		return "", err
	}
	var buf []byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			if len(buf) > 0 {
				return string(buf), nil
			}
			return "", err
		}
		if isSpace(b) {
			break
		}
		buf = append(buf, b)
	}
	return string(buf), nil
}

func readUintToken(br *bufio.Reader) (int, error) {
	tok, err := readToken(br)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, c := range []byte(tok) {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("not a decimal integer: %q", tok)
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}

func skipWhitespaceAndComments(br *bufio.Reader) error {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return err
		}
		switch {
		case b == '#':
			for {
				c, err := br.ReadByte()
				if err != nil {
					return err
				}
				if c == '\n' {
					break
				}
			}
		case isSpace(b):
			continue
		default:
			return br.UnreadByte()
		}
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
