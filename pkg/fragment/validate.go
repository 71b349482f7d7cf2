package fragment

import (
	"fmt"
	"math"
)

// Size limits.
const (
	// MinChunkSize is the smallest accepted chunk size, header included.
	MinChunkSize = 1 << 10
	// MaxChunkSize is the largest accepted chunk size, header included.
	MaxChunkSize = 4 << 40
	// MaxFileSize is the largest source file that can be split.
	MaxFileSize = 4 << 40
	// DefaultMaxBufferSize bounds the I/O buffer of a single call.
	DefaultMaxBufferSize = 128 << 20
)

// ValidateChunkSize checks that chunkSize is within
// [MinChunkSize, MaxChunkSize].
func ValidateChunkSize(chunkSize uint64) error {
	switch {
	case chunkSize > MaxChunkSize:
		return newError(KindChunkTooLarge, "", fmt.Errorf("%d > %d", chunkSize, uint64(MaxChunkSize)))
	case chunkSize < MinChunkSize:
		return newError(KindChunkTooSmall, "", fmt.Errorf("%d < %d", chunkSize, MinChunkSize))
	}
	return nil
}

// ValidateSizes checks chunk size bounds and that the source is strictly
// larger than a single chunk but not larger than MaxFileSize. It never
// touches the filesystem.
func ValidateSizes(chunkSize, fileSize uint64) error {
	if err := ValidateChunkSize(chunkSize); err != nil {
		return err
	}

	switch {
	case fileSize > MaxFileSize:
		return newError(KindSourceTooLarge, "", fmt.Errorf("%d > %d", fileSize, uint64(MaxFileSize)))
	case fileSize <= chunkSize:
		return newError(KindSourceSmallerThanChunk, "", fmt.Errorf("file size %d, chunk size %d", fileSize, chunkSize))
	}

	payload := chunkSize - HeaderSize
	if n := (fileSize + payload - 1) / payload; n > math.MaxUint32 {
		return newError(KindSourceTooLarge, "", fmt.Errorf("%d fragments needed, at most %d supported", n, uint32(math.MaxUint32)))
	}
	return nil
}
