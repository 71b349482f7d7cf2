package fragment

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

// File naming of a fragment directory. Reassembly does not rely on names:
// any file with Extension is a candidate.
const (
	Extension        = ".frag"
	MetadataFileName = "filedata" + Extension
	dataFilePrefix   = "split_file_"
)

// DataFileName returns the name of the data fragment with the given sequence
// number.
func DataFileName(seq uint32) string {
	return dataFilePrefix + strconv.FormatUint(uint64(seq), 10) + Extension
}

// SplitResult describes a finished split.
type SplitResult struct {
	// Dir is the created fragment directory.
	Dir string
	// DataFragments is the number of data fragments, metadata excluded.
	DataFragments int
	// PayloadBytes is the number of source bytes stored in data fragments.
	PayloadBytes uint64
}

// Splitter writes a file into a directory of fragments.
type Splitter struct {
	*cfg

	w *fragmentWriter
}

// NewSplitter returns a Splitter configured with the given options.
func NewSplitter(opts ...Option) *Splitter {
	c := newCfg(opts)
	return &Splitter{
		cfg: c,
		w:   newFragmentWriter(c.perm, c.noSync),
	}
}

// Split validates the chunk size against the source file, creates the
// directory <parent>/<stem> next to it and fills it with the metadata
// fragment and the data fragments. Nothing is created if validation fails.
// A failure in the middle leaves already written fragments in place.
func (s *Splitter) Split(src string, chunkSize uint64) (SplitResult, error) {
	if src == "" {
		return SplitResult{}, newError(KindNullPath, "", nil)
	}
	if err := ValidateChunkSize(chunkSize); err != nil {
		return SplitResult{}, err
	}

	fi, err := os.Stat(src)
	if err != nil {
		return SplitResult{}, newError(KindCouldNotReadFile, src, err)
	}
	if !fi.Mode().IsRegular() {
		return SplitResult{}, newError(KindCouldNotReadFile, src, errors.New("not a regular file"))
	}
	if err = ValidateSizes(chunkSize, uint64(fi.Size())); err != nil {
		return SplitResult{}, err
	}

	abs, err := filepath.Abs(src)
	if err != nil {
		return SplitResult{}, newError(KindNoParent, src, err)
	}
	name := filepath.Base(abs)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if stem == "" {
		// dot files have no extension
		stem = name
	}

	f, err := os.Open(src)
	if err != nil {
		return SplitResult{}, newError(KindCouldNotReadFile, src, err)
	}
	defer f.Close()

	return s.SplitReader(f, name, filepath.Join(filepath.Dir(abs), stem), chunkSize)
}

// SplitReader stores the stream r as the file called name in the fragment
// directory dir, creating it if needed. A directory already holding
// fragments is refused. Unlike Split it does not require the
// data to be larger than a chunk: an empty stream yields a directory with the
// metadata fragment only.
func (s *Splitter) SplitReader(r io.Reader, name, dir string, chunkSize uint64) (res SplitResult, err error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveOperation(OpSplit, time.Since(start), err == nil)
	}()

	if err = ValidateChunkSize(chunkSize); err != nil {
		return res, err
	}
	if err = checkName(name); err != nil {
		return res, err
	}
	if dir == "" {
		return res, newError(KindNullPath, "", nil)
	}

	if err = os.MkdirAll(dir, s.dirPerm()); err != nil {
		return res, newError(KindDirCreateFailed, dir, err)
	}
	if err = checkNoFragments(dir); err != nil {
		return res, err
	}
	res.Dir = dir

	metaPath := filepath.Join(dir, MetadataFileName)
	if err = s.w.writeFile(metaPath, MetadataSequence, []byte(name)); err != nil {
		return res, err
	}
	s.metrics.AddFragments(OpSplit, 1)
	s.log.Debug("metadata fragment written",
		zap.String("path", metaPath),
		zap.String("name", name))

	err = s.writeData(r, name, dir, chunkSize, &res)
	if err != nil {
		return res, err
	}

	s.log.Info("file split",
		zap.String("name", name),
		zap.String("dir", dir),
		zap.Int("fragments", res.DataFragments),
		zap.Uint64("bytes", res.PayloadBytes))
	return res, nil
}

func (s *Splitter) writeData(r io.Reader, name, dir string, chunkSize uint64, res *SplitResult) error {
	payloadSize := chunkSize - HeaderSize
	buf := make([]byte, min(payloadSize, s.maxBufferSize))

	var seq uint32
	for {
		n, eof, err := fill(r, buf)
		if err != nil {
			return newError(KindCouldNotReadFile, name, err)
		}
		if n == 0 {
			return nil
		}
		if seq == math.MaxUint32 {
			return newError(KindSourceTooLarge, name, fmt.Errorf("more than %d fragments", uint32(math.MaxUint32)))
		}
		seq++

		p := filepath.Join(dir, DataFileName(seq))
		f, err := s.w.create(p, seq)
		if err != nil {
			return err
		}

		var written uint64
		for {
			if _, err = f.Write(buf[:n]); err != nil {
				_ = f.Close()
				return newError(KindCouldNotWriteFile, p, err)
			}
			written += uint64(n)
			s.progress(int64(n))

			if eof || written == payloadSize {
				break
			}
			n, eof, err = fill(r, buf[:min(payloadSize-written, uint64(len(buf)))])
			if err != nil {
				_ = f.Close()
				return newError(KindCouldNotReadFile, name, err)
			}
			if n == 0 {
				break
			}
		}

		if err = f.Close(); err != nil {
			return newError(KindCouldNotWriteFile, p, fmt.Errorf("close file: %w", err))
		}

		res.DataFragments++
		res.PayloadBytes += written
		s.metrics.AddFragments(OpSplit, 1)
		s.metrics.AddPayloadBytes(OpSplit, int64(written))
		s.log.Debug("data fragment written",
			zap.String("path", p),
			zap.Uint32("seq", seq),
			zap.Uint64("size", written))

		if eof {
			return nil
		}
	}
}

// checkNoFragments fails if dir already contains fragments. Reassembly takes
// every fragment it finds, so leftovers of a previous split would be mixed
// into the restored file.
func checkNoFragments(dir string) error {
	des, err := os.ReadDir(dir)
	if err != nil {
		return newError(KindDirCreateFailed, dir, err)
	}
	for _, de := range des {
		if filepath.Ext(de.Name()) == Extension {
			return newError(KindDirCreateFailed, dir,
				fmt.Errorf("fragment %s already present: %w", de.Name(), fs.ErrExist))
		}
	}
	return nil
}

// fill reads from r until buf is full or r is exhausted. eof reports the
// latter.
func fill(r io.Reader, buf []byte) (n int, eof bool, err error) {
	n, err = io.ReadFull(r, buf)
	switch {
	case err == nil:
		return n, false, nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return n, true, nil
	default:
		return n, false, err
	}
}

// checkName verifies that name can be stored in the metadata fragment and
// later restored as a file in the parent of the fragment directory.
func checkName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return newError(KindNoName, name, nil)
	case !utf8.ValidString(name):
		return newError(KindNoName, name, errors.New("not valid UTF-8"))
	case strings.ContainsRune(name, '/'), filepath.Base(name) != name:
		return newError(KindNoName, name, errors.New("not a base name"))
	}
	return nil
}
