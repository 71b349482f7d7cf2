package fragment

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

// ReassembleResult describes a finished reassembly.
type ReassembleResult struct {
	// Output is the path of the restored file.
	Output string
	// DataFragments is the number of data fragments consumed.
	DataFragments int
	// PayloadBytes is the size of the restored file.
	PayloadBytes uint64
}

// Reassembler restores files from fragment directories.
type Reassembler struct {
	*cfg
}

// NewReassembler returns a Reassembler configured with the given options.
func NewReassembler(opts ...Option) *Reassembler {
	return &Reassembler{cfg: newCfg(opts)}
}

// Reassemble restores the file stored in dir. The file is created in the
// parent of dir under the name kept in the metadata fragment; an existing
// file with that name is truncated. Data fragments must be numbered 1..N
// without gaps or duplicates. The fragment directory is left intact.
func (r *Reassembler) Reassemble(dir string) (res ReassembleResult, err error) {
	start := time.Now()
	defer func() {
		r.metrics.ObserveOperation(OpReassemble, time.Since(start), err == nil)
	}()

	if dir == "" {
		return res, newError(KindNullPath, "", nil)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return res, newError(KindNoParent, dir, err)
	}
	parent := filepath.Dir(abs)
	if parent == abs {
		return res, newError(KindNullPath, dir, errors.New("fragment directory has no parent"))
	}

	entries, err := scan(abs, r.cfg)
	if err != nil {
		return res, err
	}
	if err = checkSequence(entries); err != nil {
		return res, err
	}

	name, err := readName(entries[0].Path)
	if err != nil {
		return res, err
	}
	r.metrics.AddFragments(OpReassemble, 1)

	res.Output = filepath.Join(parent, name)
	out, err := r.createOutput(res.Output)
	if err != nil {
		return res, err
	}

	data := entries[1:]
	if len(data) > 0 {
		buf := make([]byte, r.bufferSize(data[0]))
		for i := range data {
			n, err := r.copyPayload(out, res.Output, data[i], buf)
			if err != nil {
				_ = out.Close()
				return res, err
			}
			res.DataFragments++
			res.PayloadBytes += uint64(n)
		}
	}

	if err = out.Close(); err != nil {
		return res, newError(KindCouldNotWriteFile, res.Output, fmt.Errorf("close file: %w", err))
	}

	r.log.Info("file reassembled",
		zap.String("dir", abs),
		zap.String("output", res.Output),
		zap.Int("fragments", res.DataFragments),
		zap.Uint64("bytes", res.PayloadBytes))
	return res, nil
}

// checkSequence requires entries sorted by Seq to be exactly 0..N.
func checkSequence(entries []Entry) error {
	if len(entries) == 0 || entries[0].Seq != MetadataSequence {
		return newError(KindNoMetadata, "", nil)
	}
	for i := 1; i < len(entries); i++ {
		switch want := uint32(i); {
		case entries[i].Seq == entries[i-1].Seq:
			return newError(KindDuplicateSequence, entries[i].Path,
				fmt.Errorf("sequence number %d is also used by %q", entries[i].Seq, entries[i-1].Path))
		case entries[i].Seq != want:
			return newError(KindMissingFragment, entries[i].Path,
				fmt.Errorf("expected sequence number %d, got %d", want, entries[i].Seq))
		}
	}
	return nil
}

// readName returns the original file name kept in the metadata fragment.
func readName(p string) (string, error) {
	b, err := os.ReadFile(p)
	if err != nil {
		return "", newError(KindCouldNotReadFile, p, err)
	}
	if len(b) < HeaderSize {
		return "", newError(KindCouldNotReadFile, p, fmt.Errorf("read header: %w", io.ErrUnexpectedEOF))
	}

	name := b[HeaderSize:]
	switch {
	case !utf8.Valid(name):
		return "", newError(KindInvalidUTF8, p, nil)
	case len(name) == 0:
		return "", newError(KindNoName, p, nil)
	}

	s := string(name)
	if s == "." || s == ".." || filepath.Base(s) != s {
		return "", newError(KindUnsafeName, p, fmt.Errorf("name %q", s))
	}
	return s, nil
}

func (r *Reassembler) createOutput(p string) (*os.File, error) {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !r.noSync {
		flags |= os.O_SYNC
	}
	f, err := os.OpenFile(p, flags, r.perm)
	if err != nil {
		return nil, newError(KindCouldNotCreateFile, p, err)
	}
	if _, err = f.Write([]byte{}); err != nil {
		_ = f.Close()
		return nil, newError(KindCouldNotWriteFile, p, err)
	}
	return f, nil
}

// bufferSize derives the copy buffer size from the payload of the first data
// fragment. Fragments of other sizes are still copied correctly, only with
// a different number of reads.
func (r *Reassembler) bufferSize(first Entry) uint64 {
	sz := uint64(1)
	if first.Size > HeaderSize {
		sz = uint64(first.Size - HeaderSize)
	}
	return min(sz, r.maxBufferSize)
}

// copyPayload appends the payload of the fragment e to out. The header is
// read separately, so every read from the fragment carries payload only.
func (r *Reassembler) copyPayload(out io.Writer, outPath string, e Entry, buf []byte) (int64, error) {
	f, err := os.Open(e.Path)
	if err != nil {
		return 0, newError(KindCouldNotReadFile, e.Path, err)
	}
	defer f.Close()

	var hdr [HeaderSize]byte
	if _, err = io.ReadFull(f, hdr[:]); err != nil {
		return 0, newError(KindCouldNotReadFile, e.Path, fmt.Errorf("read header: %w", err))
	}
	if seq := DecodeHeader(hdr); seq != e.Seq {
		return 0, newError(KindCouldNotReadFile, e.Path, fmt.Errorf("sequence number changed from %d to %d", e.Seq, seq))
	}

	var total int64
	for {
		n, err := f.Read(buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				return total, newError(KindCouldNotWriteFile, outPath, werr)
			}
			total += int64(n)
			r.progress(int64(n))
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return total, newError(KindCouldNotReadFile, e.Path, err)
		}
	}

	r.metrics.AddFragments(OpReassemble, 1)
	r.metrics.AddPayloadBytes(OpReassemble, total)
	r.log.Debug("data fragment read",
		zap.String("path", e.Path),
		zap.Uint32("seq", e.Seq),
		zap.Int64("size", total))
	return total, nil
}
