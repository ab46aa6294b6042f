// Package inflate adapts compress/zlib into a push-style adapter: callers
// feed successive IDAT chunks in arrival order, and the same zlib stream
// stays open across calls, exactly like the teacher's one-shot
// compression.InflateData but able to accept the chunks one at a time as
// the chunk reader produces them instead of requiring the whole concatenated
// buffer up front.
//
// zlib's Reader has no API for "pause until more input arrives" — once its
// source reader returns a non-EOF error the stream is permanently broken.
// So the adapter runs the zlib.Reader in a background goroutine reading from
// an io.Pipe; Append blocks (applying natural backpressure) until the
// background goroutine has consumed the bytes just written.
package inflate

import (
	"bytes"
	"compress/zlib"
	"io"
	"sync"

	"github.com/shoccho/pngo/pngerr"
)

const defaultScratchSize = 4096

// Adapter is a streaming zlib-inflate sink. The zero value is not usable;
// construct with NewAdapter.
type Adapter struct {
	scratchSize int

	mu       sync.Mutex
	out      bytes.Buffer
	err      error
	finished bool

	started bool
	pw      *io.PipeWriter
	pr      *io.PipeReader
	done    chan struct{}
}

// NewAdapter returns an Adapter ready to accept IDAT chunk data via Append.
func NewAdapter() *Adapter {
	return &Adapter{scratchSize: defaultScratchSize}
}

func (a *Adapter) ensureStarted() {
	if a.started {
		return
	}
	a.started = true
	a.pr, a.pw = io.Pipe()
	a.done = make(chan struct{})
	go a.run()
}

func (a *Adapter) run() {
	defer close(a.done)
	defer a.pr.Close()

	zr, err := zlib.NewReader(a.pr)
	if err != nil {
		a.mu.Lock()
		a.err = pngerr.Wrap(pngerr.CorruptStream, "zlib header invalid", err)
		a.finished = true
		a.mu.Unlock()
		return
	}
	defer zr.Close()

	scratch := make([]byte, a.scratchSize)
	for {
		n, rerr := zr.Read(scratch)
		if n > 0 {
			a.mu.Lock()
			a.out.Write(scratch[:n])
			a.mu.Unlock()
		}
		if rerr != nil {
			a.mu.Lock()
			if rerr != io.EOF {
				a.err = pngerr.Wrap(pngerr.CorruptStream, "zlib stream error", rerr)
			}
			a.finished = true
			a.mu.Unlock()
			return
		}
	}
}

// Append feeds the next IDAT chunk's data, in arrival order, into the zlib
// stream. It blocks until the background decompressor has consumed it.
func (a *Adapter) Append(chunkData []byte) error {
	a.ensureStarted()

	a.mu.Lock()
	if a.finished {
		err := a.err
		a.mu.Unlock()
		if err != nil {
			return err
		}
		return pngerr.New(pngerr.CorruptStream, "IDAT received after end of zlib stream")
	}
	a.mu.Unlock()

	if len(chunkData) == 0 {
		return nil
	}

	if _, err := a.pw.Write(chunkData); err != nil {
		a.mu.Lock()
		recorded := a.err
		a.mu.Unlock()
		if recorded != nil {
			return recorded
		}
		return pngerr.Wrap(pngerr.CorruptStream, "zlib stream closed unexpectedly", err)
	}
	return nil
}

// Finish closes the input side of the stream and returns every byte
// produced across all Append calls. It is an error for the stream to end
// before zlib observes a valid end-of-stream marker.
func (a *Adapter) Finish() ([]byte, error) {
	a.ensureStarted()
	_ = a.pw.Close()
	<-a.done

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return nil, a.err
	}
	return a.out.Bytes(), nil
}
