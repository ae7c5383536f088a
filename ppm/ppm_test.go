package ppm

import (
	"bytes"
	"testing"

	"github.com/mrjoshuak/go-yuvblock/codec"
)

func TestReadWriteRawRoundTrip(t *testing.T) {
	img, err := codec.NewImage(2, 2, 255)
	if err != nil {
		t.Fatal(err)
	}
	img.Pix.Set(0, 0, codec.Pixel{R: 255, G: 0, B: 0})
	img.Pix.Set(1, 0, codec.Pixel{R: 0, G: 255, B: 0})
	img.Pix.Set(0, 1, codec.Pixel{R: 0, G: 0, B: 255})
	img.Pix.Set(1, 1, codec.Pixel{R: 128, G: 128, B: 128})

	var buf bytes.Buffer
	if err := Write(&buf, img); err != nil {
		t.Fatalf("Write: %v", err)
	}

	back, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if back.Width() != 2 || back.Height() != 2 || back.Denom != 255 {
		t.Fatalf("dims/denom = %dx%d denom=%d", back.Width(), back.Height(), back.Denom)
	}
	for _, c := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		if back.Pix.Get(c[0], c[1]) != img.Pix.Get(c[0], c[1]) {
			t.Errorf("pixel (%d,%d) mismatch: got %+v, want %+v", c[0], c[1], back.Pix.Get(c[0], c[1]), img.Pix.Get(c[0], c[1]))
		}
	}
}

func TestReadPlainP3(t *testing.T) {
	src := "P3\n# a comment\n2 1\n255\n255 0 0  0 255 0\n"
	img, err := Read(bytes.NewBufferString(src))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got := img.Pix.Get(0, 0); got != (codec.Pixel{R: 255, G: 0, B: 0}) {
		t.Errorf("pixel 0 = %+v", got)
	}
	if got := img.Pix.Get(1, 0); got != (codec.Pixel{R: 0, G: 255, B: 0}) {
		t.Errorf("pixel 1 = %+v", got)
	}
}

func TestReadRejectsBadMagic(t *testing.T) {
	_, err := Read(bytes.NewBufferString("P5\n1 1\n255\n\x00"))
	if err == nil {
		t.Fatal("expected error for unsupported magic number")
	}
}

func TestReadRejectsOversizeDenom(t *testing.T) {
	_, err := Read(bytes.NewBufferString("P6\n1 1\n70000\n"))
	if err == nil {
		t.Fatal("expected error for denom > 65535")
	}
}

func TestReadRejectsShortBody(t *testing.T) {
	_, err := Read(bytes.NewBufferString("P6\n2 2\n255\n\x01\x02\x03"))
	if err == nil {
		t.Fatal("expected error for truncated pixel data")
	}
}

func TestReadWrite16BitDenom(t *testing.T) {
	img, err := codec.NewImage(1, 1, 1000)
	if err != nil {
		t.Fatal(err)
	}
	img.Pix.Set(0, 0, codec.Pixel{R: 999, G: 500, B: 1})

	var buf bytes.Buffer
	if err := Write(&buf, img); err != nil {
		t.Fatalf("Write: %v", err)
	}
	back, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if back.Pix.Get(0, 0) != (codec.Pixel{R: 999, G: 500, B: 1}) {
		t.Errorf("16-bit round trip mismatch: got %+v", back.Pix.Get(0, 0))
	}
}
