package pixels

import (
	"github.com/pkg/errors"
)

// Error kinds returned by the extractors. Match them with errors.Is.
var (
	// ErrRead means the path is missing, unreadable or not a decodable image.
	ErrRead = errors.New("read error")
	// ErrUnsupportedFormat means the decoded image has a channel count outside {1, 3, 4}.
	ErrUnsupportedFormat = errors.New("unsupported image format")
	// ErrDependency means the external preprocessing step failed.
	ErrDependency = errors.New("dependency failure")
)

// Error ties an error kind to the underlying cause.
type Error struct {
	// Kind is one of ErrRead, ErrUnsupportedFormat or ErrDependency.
	Kind error
	// Err is the cause, reported verbatim.
	Err error
}

func (e *Error) Error() string {
	return e.Kind.Error() + ": " + e.Err.Error()
}

// Is reports whether target is the kind of this error.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func kindError(kind, cause error, format string, args ...interface{}) error {
	if cause == nil {
		return &Error{Kind: kind, Err: errors.Errorf(format, args...)}
	}
	return &Error{Kind: kind, Err: errors.Wrapf(cause, format, args...)}
}
