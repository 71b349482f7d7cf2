package fragment

import (
	"fmt"
	"io/fs"
	"os"
)

// fragmentWriter creates fragment files. Every file is created exactly once
// and written in append mode.
type fragmentWriter struct {
	perm  fs.FileMode
	flags int
}

func newFragmentWriter(perm fs.FileMode, noSync bool) *fragmentWriter {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC | os.O_APPEND
	if !noSync {
		flags |= os.O_SYNC
	}
	return &fragmentWriter{
		perm:  perm,
		flags: flags,
	}
}

// create opens a new fragment at p and writes its header.
func (w *fragmentWriter) create(p string, seq uint32) (*os.File, error) {
	f, err := os.OpenFile(p, w.flags, w.perm)
	if err != nil {
		return nil, newError(KindCouldNotCreateFile, p, err)
	}

	hdr := EncodeHeader(seq)
	if _, err = f.Write(hdr[:]); err != nil {
		_ = f.Close()
		return nil, newError(KindCouldNotWriteFile, p, err)
	}
	return f, nil
}

// writeFile creates a complete fragment with the given payload.
func (w *fragmentWriter) writeFile(p string, seq uint32, payload []byte) error {
	f, err := w.create(p, seq)
	if err != nil {
		return err
	}
	if _, err = f.Write(payload); err != nil {
		_ = f.Close()
		return newError(KindCouldNotWriteFile, p, err)
	}
	if err = f.Close(); err != nil {
		return newError(KindCouldNotWriteFile, p, fmt.Errorf("close file: %w", err))
	}
	return nil
}
