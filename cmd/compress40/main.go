// compress40 compresses and decompresses images using a fixed ~3:1
// ratio lossy codec built on a luminance/chroma color transform, a 2x2
// block DCT, and bit-packed 32-bit codewords.
//
// Usage:
//
//	compress40 [-c|-d] [-z] [file]
//
// Options:
//
//	-c        Compress: read a raw P6 PPM from file or stdin, write the
//	          compressed stream to stdout.
//	-d        Decompress: read a compressed stream from file or stdin,
//	          write a P6 PPM (denominator 255) to stdout.
//	-z        Wrap (with -c) or unwrap (with -d) the compressed stream
//	          in a zlib envelope. Optional; the core 32-bit codeword
//	          format underneath is unaffected either way.
//	-h        Show this help message.
//	--version Show version information.
//
// Exit codes:
//
//	0: success
//	1: data error (malformed PPM or compressed stream)
//	2: usage error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zlib"

	"github.com/mrjoshuak/go-yuvblock/codec"
	"github.com/mrjoshuak/go-yuvblock/ppm"
	"github.com/mrjoshuak/go-yuvblock/wire"
)

const version = "1.0.0"

func main() {
	mode := ""
	zipEnvelope := false
	files := []string{}

	for _, arg := range os.Args[1:] {
		switch arg {
		case "-c":
			mode = "c"
		case "-d":
			mode = "d"
		case "-z":
			zipEnvelope = true
		case "-h", "--help":
			printUsage()
			os.Exit(0)
		case "--version":
			fmt.Printf("compress40 version %s\n", version)
			os.Exit(0)
		default:
			if len(arg) > 0 && arg[0] == '-' {
				fmt.Fprintf(os.Stderr, "Unknown option: %s\n", arg)
				printUsage()
				os.Exit(2)
			}
			files = append(files, arg)
		}
	}

	if mode == "" {
		fmt.Fprintln(os.Stderr, "Error: exactly one of -c or -d is required")
		printUsage()
		os.Exit(2)
	}
	if len(files) > 1 {
		fmt.Fprintln(os.Stderr, "Error: at most one input file may be given")
		printUsage()
		os.Exit(2)
	}

	in := io.Reader(os.Stdin)
	if len(files) == 1 {
		f, err := os.Open(files[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "compress40: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	var err error
	if mode == "c" {
		err = compress(in, os.Stdout, zipEnvelope)
	} else {
		err = decompress(in, os.Stdout, zipEnvelope)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "compress40: %v\n", err)
		os.Exit(1)
	}
}

func compress(in io.Reader, out io.Writer, zipEnvelope bool) error {
	img, err := ppm.Read(in)
	if err != nil {
		return err
	}
	bg := codec.Compress(img)

	if !zipEnvelope {
		return wire.Write(out, bg)
	}
	zw := zlib.NewWriter(out)
	if err := wire.Write(zw, bg); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

func decompress(in io.Reader, out io.Writer, zipEnvelope bool) error {
	stream := in
	var zr io.ReadCloser
	if zipEnvelope {
		r, err := zlib.NewReader(in)
		if err != nil {
			return fmt.Errorf("compress40: corrupt zlib envelope: %w", err)
		}
		zr = r
		stream = r
	}
	bg, err := wire.Read(stream)
	if zr != nil {
		zr.Close()
	}
	if err != nil {
		return err
	}
	img := codec.Decompress(bg)
	return ppm.Write(out, img)
}

func printUsage() {
	fmt.Println(`Usage: compress40 [-c|-d] [-z] [file]

Compress or decompress a P6 PPM image with a fixed ~3:1 ratio lossy codec.

Options:
  -c         Compress: PPM in, compressed stream out.
  -d         Decompress: compressed stream in, PPM out.
  -z         Wrap/unwrap the compressed stream in a zlib envelope.
  -h         Show this help message.
  --version  Show version information.

If no file is given, input is read from stdin.

Examples:
  compress40 -c image.ppm > image.40
  compress40 -d image.40 > image.ppm
  compress40 -c -z image.ppm > image.40.z`)
}
