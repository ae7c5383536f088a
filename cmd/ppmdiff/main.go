// ppmdiff reports the per-channel RMSE between two PPM images of (nearly)
// the same dimensions, normalizing each channel by its own image's
// denominator before comparing. It is the acceptance check for
// the codec's round-trip RMSE, not part of the codec itself.
//
// Usage:
//
//	ppmdiff <file1|-> <file2|->
//
// At most one of the two arguments may be "-" to read from stdin.
package main

import (
	"fmt"
	"math"
	"os"

	"github.com/mrjoshuak/go-yuvblock/codec"
	"github.com/mrjoshuak/go-yuvblock/ppm"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "Usage: ppmdiff <file1|-> <file2|->")
		os.Exit(2)
	}

	img1, err := openPPM(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "ppmdiff: %v\n", err)
		os.Exit(1)
	}
	img2, err := openPPM(os.Args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "ppmdiff: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Original: (%d, %d)\n", img1.Width(), img1.Height())
	fmt.Printf("Decompressed: (%d, %d)\n", img2.Width(), img2.Height())

	if abs(img1.Width()-img2.Width()) > 1 || abs(img1.Height()-img2.Height()) > 1 {
		fmt.Fprintf(os.Stderr, "Dimensions differ by more than 1. RMSE: %.4f\n", 1.0)
		os.Exit(1)
	}

	fmt.Printf("RMSE: %.4f\n", rmse(img1, img2))
}

func openPPM(name string) (*codec.Image, error) {
	if name == "-" {
		return ppm.Read(os.Stdin)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ppm.Read(f)
}

func rmse(img1, img2 *codec.Image) float64 {
	w := min(img1.Width(), img2.Width())
	h := min(img1.Height(), img2.Height())
	d1, d2 := float64(img1.Denom), float64(img2.Denom)

	var sum float64
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p1 := img1.Pix.Get(x, y)
			p2 := img2.Pix.Get(x, y)
			sum += channelDiff2(d1, d2, p1.R, p2.R)
			sum += channelDiff2(d1, d2, p1.G, p2.G)
			sum += channelDiff2(d1, d2, p1.B, p2.B)
		}
	}
	return math.Sqrt(sum / float64(3*w*h))
}

func channelDiff2(d1, d2 float64, v1, v2 uint16) float64 {
	diff := float64(v1)/d1 - float64(v2)/d2
	return diff * diff
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
