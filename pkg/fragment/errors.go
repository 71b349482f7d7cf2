package fragment

import (
	"errors"
	"fmt"
)

// Kind enumerates failures reported by the splitter and the reassembler.
type Kind uint8

// Kinds of failures. The set is closed: callers may switch over it.
const (
	KindUnknown Kind = iota

	// validation
	KindChunkTooLarge
	KindChunkTooSmall
	KindSourceSmallerThanChunk
	KindSourceTooLarge

	// path
	KindNoParent
	KindNoName
	KindNullPath

	// I/O
	KindDirCreateFailed
	KindCouldNotCreateFile
	KindCouldNotWriteFile
	KindCouldNotReadFile
	KindCouldNotReadDir

	// format
	KindInvalidUTF8
	KindUnsafeName
	KindNoMetadata
	KindDuplicateSequence
	KindMissingFragment
)

// Category groups kinds by the stage they are detected at.
type Category uint8

// Failure categories.
const (
	CategoryUnknown Category = iota
	CategoryValidation
	CategoryPath
	CategoryIO
	CategoryFormat
)

// Sentinel errors, one per Kind. Any error returned by this package matches
// exactly one of them via errors.Is.
var (
	ErrChunkTooLarge          = errors.New("chunk size is too large")
	ErrChunkTooSmall          = errors.New("chunk size is too small")
	ErrSourceSmallerThanChunk = errors.New("source file is not larger than chunk size")
	ErrSourceTooLarge         = errors.New("source file is too large")
	ErrNoParent               = errors.New("path has no parent directory")
	ErrNoName                 = errors.New("path has no file name")
	ErrNullPath               = errors.New("no path selected")
	ErrDirCreateFailed        = errors.New("could not create directory")
	ErrCouldNotCreateFile     = errors.New("could not create file")
	ErrCouldNotWriteFile      = errors.New("could not write file")
	ErrCouldNotReadFile       = errors.New("could not read file")
	ErrCouldNotReadDir        = errors.New("could not read directory")
	ErrInvalidUTF8            = errors.New("file name is not valid UTF-8")
	ErrUnsafeName             = errors.New("file name is not a plain base name")
	ErrNoMetadata             = errors.New("metadata fragment is missing")
	ErrDuplicateSequence      = errors.New("duplicate fragment sequence number")
	ErrMissingFragment        = errors.New("fragment sequence has a gap")
)

var kindSentinels = [...]error{
	KindUnknown:                errors.New("unknown fragment error"),
	KindChunkTooLarge:          ErrChunkTooLarge,
	KindChunkTooSmall:          ErrChunkTooSmall,
	KindSourceSmallerThanChunk: ErrSourceSmallerThanChunk,
	KindSourceTooLarge:         ErrSourceTooLarge,
	KindNoParent:               ErrNoParent,
	KindNoName:                 ErrNoName,
	KindNullPath:               ErrNullPath,
	KindDirCreateFailed:        ErrDirCreateFailed,
	KindCouldNotCreateFile:     ErrCouldNotCreateFile,
	KindCouldNotWriteFile:      ErrCouldNotWriteFile,
	KindCouldNotReadFile:       ErrCouldNotReadFile,
	KindCouldNotReadDir:        ErrCouldNotReadDir,
	KindInvalidUTF8:            ErrInvalidUTF8,
	KindUnsafeName:             ErrUnsafeName,
	KindNoMetadata:             ErrNoMetadata,
	KindDuplicateSequence:      ErrDuplicateSequence,
	KindMissingFragment:        ErrMissingFragment,
}

func (k Kind) sentinel() error {
	if int(k) >= len(kindSentinels) {
		return kindSentinels[KindUnknown]
	}
	return kindSentinels[k]
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	return k.sentinel().Error()
}

// Category returns the category k belongs to.
func (k Kind) Category() Category {
	switch k {
	case KindChunkTooLarge, KindChunkTooSmall, KindSourceSmallerThanChunk, KindSourceTooLarge:
		return CategoryValidation
	case KindNoParent, KindNoName, KindNullPath:
		return CategoryPath
	case KindDirCreateFailed, KindCouldNotCreateFile, KindCouldNotWriteFile, KindCouldNotReadFile, KindCouldNotReadDir:
		return CategoryIO
	case KindInvalidUTF8, KindUnsafeName, KindNoMetadata, KindDuplicateSequence, KindMissingFragment:
		return CategoryFormat
	default:
		return CategoryUnknown
	}
}

// String implements fmt.Stringer.
func (c Category) String() string {
	switch c {
	case CategoryValidation:
		return "validation"
	case CategoryPath:
		return "path"
	case CategoryIO:
		return "I/O"
	case CategoryFormat:
		return "format"
	default:
		return "unknown"
	}
}

// Error describes a failed split or reassembly. Path is empty for failures
// that are not tied to a filesystem location.
type Error struct {
	Kind  Kind
	Path  string
	Cause error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Path != "" {
		msg = fmt.Sprintf("%s %q", msg, e.Path)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap makes both the Kind sentinel and the cause reachable for errors.Is
// and errors.As.
func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind.sentinel()}
	}
	return []error{e.Kind.sentinel(), e.Cause}
}

// KindOf returns the Kind of the first *Error in err's chain or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func newError(k Kind, path string, cause error) *Error {
	return &Error{Kind: k, Path: path, Cause: cause}
}
