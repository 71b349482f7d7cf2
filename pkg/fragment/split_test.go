package fragment

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"
)

func TestSplitter_Split(t *testing.T) {
	t.Run("uniform fragments", func(t *testing.T) {
		tmp := t.TempDir()
		data := randBytes(t, 8192)
		src := writeSource(t, tmp, "data.bin", data)

		res, err := NewSplitter().Split(src, 2052)
		require.NoError(t, err)
		require.Equal(t, filepath.Join(tmp, "data"), res.Dir)
		require.Equal(t, 4, res.DataFragments)
		require.EqualValues(t, 8192, res.PayloadBytes)

		des, err := os.ReadDir(res.Dir)
		require.NoError(t, err)
		require.Len(t, des, 5)

		seq, name := readFragment(t, filepath.Join(res.Dir, MetadataFileName))
		require.EqualValues(t, 0, seq)
		require.Equal(t, "data.bin", string(name))

		var restored []byte
		for i := uint32(1); i <= 4; i++ {
			p := filepath.Join(res.Dir, DataFileName(i))
			fi, err := os.Stat(p)
			require.NoError(t, err)
			require.EqualValues(t, 2052, fi.Size())

			seq, payload := readFragment(t, p)
			require.Equal(t, i, seq)
			restored = append(restored, payload...)
		}
		require.Equal(t, data, restored)

		got, err := os.ReadFile(src)
		require.NoError(t, err)
		require.Equal(t, data, got, "source must not be touched")
	})

	t.Run("chunk one byte less than file", func(t *testing.T) {
		tmp := t.TempDir()
		src := writeSource(t, tmp, "f.txt", randBytes(t, 4096))

		res, err := NewSplitter().Split(src, 4095)
		require.NoError(t, err)
		require.Equal(t, 2, res.DataFragments)

		_, last := readFragment(t, filepath.Join(res.Dir, DataFileName(2)))
		require.Len(t, last, 4096-(4095-HeaderSize))
	})

	t.Run("validation failures do not touch filesystem", func(t *testing.T) {
		for _, tc := range []struct {
			name  string
			size  int
			chunk uint64
			err   error
		}{
			{name: "chunk equal to file", size: 4096, chunk: 4096, err: ErrSourceSmallerThanChunk},
			{name: "chunk too small", size: 4096, chunk: MinChunkSize - 1, err: ErrChunkTooSmall},
			{name: "chunk too large", size: 4096, chunk: MaxChunkSize + 1, err: ErrChunkTooLarge},
			{name: "empty file", size: 0, chunk: MinChunkSize, err: ErrSourceSmallerThanChunk},
		} {
			t.Run(tc.name, func(t *testing.T) {
				tmp := t.TempDir()
				src := writeSource(t, tmp, "f.txt", randBytes(t, tc.size))

				_, err := NewSplitter().Split(src, tc.chunk)
				require.ErrorIs(t, err, tc.err)

				_, err = os.Stat(filepath.Join(tmp, "f"))
				require.ErrorIs(t, err, fs.ErrNotExist)
			})
		}
	})

	t.Run("missing source", func(t *testing.T) {
		_, err := NewSplitter().Split(filepath.Join(t.TempDir(), "none.bin"), MinChunkSize)
		require.ErrorIs(t, err, ErrCouldNotReadFile)
		require.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("directory source", func(t *testing.T) {
		_, err := NewSplitter().Split(t.TempDir(), MinChunkSize)
		require.ErrorIs(t, err, ErrCouldNotReadFile)
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := NewSplitter().Split("", MinChunkSize)
		require.ErrorIs(t, err, ErrNullPath)
	})

	t.Run("output directory collides with source", func(t *testing.T) {
		tmp := t.TempDir()
		src := writeSource(t, tmp, "noext", randBytes(t, 4096))

		_, err := NewSplitter().Split(src, MinChunkSize)
		require.ErrorIs(t, err, ErrDirCreateFailed)
	})

	t.Run("existing fragments are not overwritten", func(t *testing.T) {
		tmp := t.TempDir()
		src := writeSource(t, tmp, "f.bin", randBytes(t, 10000))

		first, err := NewSplitter().Split(src, 1024)
		require.NoError(t, err)
		require.Equal(t, 10, first.DataFragments)

		writeSource(t, tmp, "f.bin", randBytes(t, 10000))
		_, err = NewSplitter().Split(src, 4096)
		require.ErrorIs(t, err, ErrDirCreateFailed)
		require.ErrorIs(t, err, fs.ErrExist)

		des, err := os.ReadDir(first.Dir)
		require.NoError(t, err)
		require.Len(t, des, 11)
		_, err = os.Stat(filepath.Join(first.Dir, DataFileName(10)))
		require.NoError(t, err)
	})

	t.Run("existing directory without fragments", func(t *testing.T) {
		tmp := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(tmp, "f"), 0o750))
		require.NoError(t, os.WriteFile(filepath.Join(tmp, "f", "notes.txt"), []byte("x"), 0o600))
		src := writeSource(t, tmp, "f.bin", randBytes(t, 5000))

		res, err := NewSplitter().Split(src, MinChunkSize)
		require.NoError(t, err)
		require.Equal(t, 5, res.DataFragments)
	})

	t.Run("progress and metrics", func(t *testing.T) {
		tmp := t.TempDir()
		src := writeSource(t, tmp, "f.txt", randBytes(t, 5000))
		m := newTestMetrics()

		var total int64
		res, err := NewSplitter(
			WithMetrics(m),
			WithProgress(func(n int64) { total += n }),
		).Split(src, MinChunkSize)
		require.NoError(t, err)
		require.EqualValues(t, 5000, total)
		require.Equal(t, 5, res.DataFragments)
		require.Equal(t, 6, m.fragments[OpSplit])
		require.EqualValues(t, 5000, m.bytes[OpSplit])
		require.Equal(t, []bool{true}, m.operations[OpSplit])
	})
}

func TestSplitter_SplitReader(t *testing.T) {
	const chunk = MinChunkSize

	checkLayout := func(t *testing.T, dir string, data []byte) {
		var restored []byte
		payload := chunk - HeaderSize
		n := (len(data) + payload - 1) / payload
		for i := 1; i <= n; i++ {
			seq, b := readFragment(t, filepath.Join(dir, DataFileName(uint32(i))))
			require.EqualValues(t, i, seq)
			if i < n {
				require.Len(t, b, payload)
			}
			restored = append(restored, b...)
		}
		require.Equal(t, data, restored)

		_, err := os.Stat(filepath.Join(dir, DataFileName(uint32(n+1))))
		require.ErrorIs(t, err, fs.ErrNotExist)
	}

	t.Run("short reads", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "out")
		data := randBytes(t, 3000)

		res, err := NewSplitter().SplitReader(iotest.OneByteReader(bytes.NewReader(data)), "f.bin", dir, chunk)
		require.NoError(t, err)
		require.Equal(t, 3, res.DataFragments)
		checkLayout(t, dir, data)
	})

	t.Run("buffer smaller than payload", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "out")
		data := randBytes(t, 4*(chunk-HeaderSize))

		res, err := NewSplitter(WithMaxBufferSize(100)).SplitReader(bytes.NewReader(data), "f.bin", dir, chunk)
		require.NoError(t, err)
		require.Equal(t, 4, res.DataFragments)
		checkLayout(t, dir, data)
	})

	t.Run("empty stream", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "out")

		res, err := NewSplitter().SplitReader(bytes.NewReader(nil), "empty.txt", dir, chunk)
		require.NoError(t, err)
		require.Zero(t, res.DataFragments)

		des, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, des, 1)
		require.Equal(t, MetadataFileName, des[0].Name())
	})

	t.Run("read failure keeps written fragments", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "out")
		boom := errors.New("boom")
		r := io.MultiReader(bytes.NewReader(randBytes(t, chunk-HeaderSize)), iotest.ErrReader(boom))

		_, err := NewSplitter().SplitReader(r, "f.bin", dir, chunk)
		require.ErrorIs(t, err, ErrCouldNotReadFile)
		require.ErrorIs(t, err, boom)

		_, err = os.Stat(filepath.Join(dir, MetadataFileName))
		require.NoError(t, err)
	})

	t.Run("invalid names", func(t *testing.T) {
		for _, name := range []string{"", ".", "..", "a/b", string([]byte{0xff, 0xfe})} {
			_, err := NewSplitter().SplitReader(bytes.NewReader(nil), name, filepath.Join(t.TempDir(), "out"), chunk)
			require.ErrorIs(t, err, ErrNoName, name)
		}
	})
}
