package vfat

import "fmt"

// Code identifies the kind of failure a vfat operation ran into. FileSystem
// operations and the built-in block devices return an *Error wrapping one of
// these, so callers can map a failure back to the POSIX-like -1 convention
// without string matching. CreateImage, and Format through it, can also
// return plain errors from creating the image file.
type Code int

const (
	_ Code = iota
	ErrNotMounted
	ErrAlreadyMounted
	ErrBadDisk
	ErrIoFailure
	ErrNoSuchFile
	ErrFileExists
	ErrNameTooLong
	ErrNullName
	ErrDirectoryFull
	ErrTooManyOpen
	ErrBadHandle
	ErrSeekOutOfRange
	ErrBusyFile
)

func (c Code) String() string {
	switch c {
	case ErrNotMounted:
		return "not mounted"
	case ErrAlreadyMounted:
		return "already mounted"
	case ErrBadDisk:
		return "bad disk"
	case ErrIoFailure:
		return "io failure"
	case ErrNoSuchFile:
		return "no such file"
	case ErrFileExists:
		return "file exists"
	case ErrNameTooLong:
		return "name too long"
	case ErrNullName:
		return "null name"
	case ErrDirectoryFull:
		return "directory full"
	case ErrTooManyOpen:
		return "too many open files"
	case ErrBadHandle:
		return "bad handle"
	case ErrSeekOutOfRange:
		return "seek out of range"
	case ErrBusyFile:
		return "busy file"
	default:
		return "unknown error"
	}
}

// Error is the concrete error type every vfat operation returns. Wrap with
// fmt.Errorf("%w: ...", err) is unnecessary; callers interested in the kind
// of failure should use errors.As to recover the Code.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code.String()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newErr(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}
