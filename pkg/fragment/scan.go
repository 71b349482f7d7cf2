package fragment

import (
	"cmp"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"go.uber.org/zap"
)

// Entry is a fragment found in a fragment directory.
type Entry struct {
	Path string
	Seq  uint32
	// Size is the size of the whole file, header included.
	Size int64
}

// Scan lists fragments in dir and returns them ordered by sequence number.
// Only the header of each fragment is read. Subdirectories and files without
// Extension are ignored. Entries whose type can not be determined or which
// are not regular files are skipped and reported with a single warning.
// A fragment shorter than HeaderSize fails the scan.
func Scan(dir string, opts ...Option) ([]Entry, error) {
	return scan(dir, newCfg(opts))
}

func scan(dir string, c *cfg) ([]Entry, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, newError(KindCouldNotReadDir, dir, err)
	}

	var (
		res  []Entry
		skip []string
	)
	for _, de := range des {
		if filepath.Ext(de.Name()) != Extension {
			continue
		}

		p := filepath.Join(dir, de.Name())

		var fi fs.FileInfo
		if de.Type()&fs.ModeSymlink != 0 {
			fi, err = os.Stat(p)
		} else {
			fi, err = de.Info()
		}
		if err != nil {
			skip = append(skip, de.Name())
			continue
		}
		if fi.IsDir() {
			continue
		}
		if !fi.Mode().IsRegular() {
			// FIFOs and devices may block on open
			skip = append(skip, de.Name())
			continue
		}

		seq, err := readHeader(p)
		if err != nil {
			return nil, err
		}

		res = append(res, Entry{Path: p, Seq: seq, Size: fi.Size()})
		c.log.Debug("fragment found",
			zap.String("path", p),
			zap.Uint32("seq", seq),
			zap.Int64("size", fi.Size()))
	}

	if len(skip) > 0 {
		c.log.Warn("skipped unreadable directory entries",
			zap.String("dir", dir),
			zap.Int("count", len(skip)),
			zap.Strings("entries", skip))
	}

	slices.SortStableFunc(res, func(a, b Entry) int {
		return cmp.Compare(a.Seq, b.Seq)
	})
	return res, nil
}

func readHeader(p string) (uint32, error) {
	f, err := os.Open(p)
	if err != nil {
		return 0, newError(KindCouldNotReadFile, p, err)
	}
	defer f.Close()

	var hdr [HeaderSize]byte
	if _, err = io.ReadFull(f, hdr[:]); err != nil {
		return 0, newError(KindCouldNotReadFile, p, fmt.Errorf("read header: %w", err))
	}
	return DecodeHeader(hdr), nil
}
