// Command pngdump decodes a PNG file and reports its header fields,
// optionally dumping the canonical RGB pixels out as a PPM image. Argument
// parsing intentionally stays on the standard flag package: pngo is a
// decoding library, and command-line tooling around it is explicitly out of
// the library's own scope.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/shoccho/pngo/png"
	"github.com/shoccho/pngo/utils"
)

func main() {
	var ppmOut string
	var verbose bool
	flag.StringVar(&ppmOut, "ppm", "", "write the decoded image to this path as a PPM file")
	flag.BoolVar(&verbose, "v", false, "enable debug-level decode logging")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: pngdump [-ppm out.ppm] [-v] <file.png>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	d, err := png.Open(path, png.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "pngdump: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%dx%d, bit depth %d, color type %s\n", d.Width(), d.Height(), d.BitDepth(), d.ColorType())
	fmt.Printf("trace id: %s\n", d.TraceID())

	if ppmOut == "" {
		return
	}

	rgb, err := d.RGB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "pngdump: %v\n", err)
		os.Exit(1)
	}

	out, err := os.Create(ppmOut)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pngdump: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := utils.WritePPM(out, int(d.Width()), int(d.Height()), rgb); err != nil {
		fmt.Fprintf(os.Stderr, "pngdump: %v\n", err)
		os.Exit(1)
	}
}
