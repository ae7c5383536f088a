// Package wire reads and writes the compressed stream: an ASCII header
// naming the post-trim pixel dimensions, followed by a row-major stream
// of 32-bit big-endian codewords.
//
// The reference codec buffers a file's bytes behind a random-access
// cursor (internal/xdr.Reader/Writer does the same for OpenEXR's
// little-endian fields); this package instead streams through
// io.Reader/io.Writer so the CLI can pipe a compressed image through
// stdin/stdout without holding the whole stream in memory.
package wire

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/mrjoshuak/go-yuvblock/codec"
	"github.com/mrjoshuak/go-yuvblock/internal/grid"
)

// headerPrefix is the fixed ASCII text preceding the dimensions line.
const headerPrefix = "COMP40 Compressed image format 2\n"

// ErrFormat reports a malformed compressed stream: bad header, or a body
// shorter than the declared dimensions require.
var ErrFormat = fmt.Errorf("wire: malformed compressed stream")

// Write emits the header followed by bg's codewords in row-major order,
// each as 4 big-endian bytes.
func Write(w io.Writer, bg *codec.BlockGrid) error {
	bw := bufio.NewWriter(w)
	if _, err := io.WriteString(bw, headerPrefix); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(bw, "%d %d\n", bg.W, bg.H); err != nil {
		return err
	}
	var buf [4]byte
	bh, bwid := bg.Words.Height(), bg.Words.Width()
	for row := 0; row < bh; row++ {
		for col := 0; col < bwid; col++ {
			binary.BigEndian.PutUint32(buf[:], uint32(bg.Words.Get(col, row)))
			if _, err := bw.Write(buf[:]); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// Read parses the header and the declared number of codewords, in that
// order, returning a BlockGrid ready for codec.Decompress.
//
// EOF before the last declared codeword is reported as ErrFormat: a
// truncated stream is a fatal format error, never a partial result. Bytes
// after the last declared codeword are not read.
func Read(r io.Reader) (*codec.BlockGrid, error) {
	br := bufio.NewReader(r)

	if err := expectLiteral(br, headerPrefix); err != nil {
		return nil, err
	}

	var w, h int
	if _, err := fmt.Fscanf(br, "%d %d", &w, &h); err != nil {
		return nil, fmt.Errorf("%w: bad dimensions: %v", ErrFormat, err)
	}
	if w < 0 || h < 0 || w%2 != 0 || h%2 != 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d must be non-negative and even", ErrFormat, w, h)
	}
	if err := expectLiteral(br, "\n"); err != nil {
		return nil, err
	}

	bwid, bh := w/2, h/2
	words := grid.New[codec.Codeword](bwid, bh)
	var buf [4]byte
	for row := 0; row < bh; row++ {
		for col := 0; col < bwid; col++ {
			if _, err := io.ReadFull(br, buf[:]); err != nil {
				return nil, fmt.Errorf("%w: short codeword stream: %v", ErrFormat, err)
			}
			words.Set(col, row, codec.Codeword(binary.BigEndian.Uint32(buf[:])))
		}
	}

	return &codec.BlockGrid{W: w, H: h, Words: words}, nil
}

func expectLiteral(br *bufio.Reader, s string) error {
	buf := make([]byte, len(s))
	if _, err := io.ReadFull(br, buf); err != nil {
		return fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if string(buf) != s {
		return fmt.Errorf("%w: expected %q, got %q", ErrFormat, s, string(buf))
	}
	return nil
}

// ByteLen returns the number of body bytes (excluding header) Write will
// emit for a block grid of the given pixel dimensions: 4 * floor(w/2) *
// floor(h/2).
func ByteLen(w, h int) int {
	return 4 * (w / 2) * (h / 2)
}
