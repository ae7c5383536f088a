package wire

import (
	"bytes"
	"testing"

	"github.com/mrjoshuak/go-yuvblock/codec"
	"github.com/mrjoshuak/go-yuvblock/internal/grid"
)

func TestWriteHeaderAndBodyScenario(t *testing.T) {
	// A 4x2 image (one block row of two blocks).
	words := grid.New[codec.Codeword](2, 1)
	words.Set(0, 0, 0x80000000)
	words.Set(1, 0, 0x00000000)
	bg := &codec.BlockGrid{W: 4, H: 2, Words: words}

	var buf bytes.Buffer
	if err := Write(&buf, bg); err != nil {
		t.Fatalf("Write: %v", err)
	}

	wantHeader := "COMP40 Compressed image format 2\n4 2\n"
	got := buf.Bytes()
	if string(got[:len(wantHeader)]) != wantHeader {
		t.Fatalf("header = %q, want %q", got[:len(wantHeader)], wantHeader)
	}
	body := got[len(wantHeader):]
	if len(body) != 8 {
		t.Fatalf("body length = %d, want 8", len(body))
	}
	want := []byte{0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	if !bytes.Equal(body, want) {
		t.Fatalf("body = % X, want % X", body, want)
	}
}

func TestReadWriteRoundTrip(t *testing.T) {
	words := grid.New[codec.Codeword](3, 2)
	var v codec.Codeword
	for row := 0; row < 2; row++ {
		for col := 0; col < 3; col++ {
			v++
			words.Set(col, row, v*0x01010101)
		}
	}
	bg := &codec.BlockGrid{W: 6, H: 4, Words: words}

	var buf bytes.Buffer
	if err := Write(&buf, bg); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.W != bg.W || got.H != bg.H {
		t.Fatalf("dims = %dx%d, want %dx%d", got.W, got.H, bg.W, bg.H)
	}
	for row := 0; row < 2; row++ {
		for col := 0; col < 3; col++ {
			if got.Words.Get(col, row) != bg.Words.Get(col, row) {
				t.Errorf("codeword (%d,%d) mismatch", col, row)
			}
		}
	}
}

func TestReadRejectsBadHeader(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("NOT A HEADER\n4 2\n")))
	if err == nil {
		t.Fatal("expected error on bad header prefix")
	}
}

func TestReadRejectsShortBody(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString(headerPrefix)
	buf.WriteString("4 2\n")
	buf.Write([]byte{0x00, 0x00}) // only 2 of the 8 required bytes
	_, err := Read(&buf)
	if err == nil {
		t.Fatal("expected error on truncated body")
	}
}

func TestByteLen(t *testing.T) {
	if n := ByteLen(4, 2); n != 8 {
		t.Errorf("ByteLen(4,2) = %d, want 8", n)
	}
	if n := ByteLen(5, 3); n != 8 {
		t.Errorf("ByteLen(5,3) = %d, want 8 (floor division)", n)
	}
}
