// Package utils writes decoded images out as PPM, the same output format
// the teacher's decoder produced, adapted here into a small reusable writer
// instead of code inlined into main's filter loop.
package utils

import (
	"fmt"
	"io"
)

// WritePPM writes an 8-bit-per-sample RGB buffer as a binary (P6) PPM image.
// rgb must hold exactly width*height*3 bytes.
func WritePPM(w io.Writer, width, height int, rgb []byte) error {
	want := width * height * 3
	if len(rgb) != want {
		return fmt.Errorf("utils: WritePPM expected %d RGB bytes, got %d", want, len(rgb))
	}
	if _, err := fmt.Fprintf(w, "P6\n%d %d\n255\n", width, height); err != nil {
		return err
	}
	_, err := w.Write(rgb)
	return err
}
