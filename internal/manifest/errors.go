package manifest

import (
	"errors"
	"strings"
)

// Kind classifies why a manifest lookup failed.
type Kind int

const (
	KindUnknown Kind = iota
	KindEmptyInput
	KindInvalidArchive
	KindManifestNotFound
	KindDecodeFailure
	KindManifestUnreadable
	KindMissingPackageName
	KindMissingLaunchActivity
	KindIncompleteIdentity
	KindMissingVersionInfo
	KindInvalidVersionCode
	KindInvalidVersionName
)

func (k Kind) String() string {
	switch k {
	case KindEmptyInput:
		return "empty input"
	case KindInvalidArchive:
		return "invalid archive"
	case KindManifestNotFound:
		return "manifest not found"
	case KindDecodeFailure:
		return "decode failure"
	case KindManifestUnreadable:
		return "manifest unreadable"
	case KindMissingPackageName:
		return "missing package name"
	case KindMissingLaunchActivity:
		return "missing launch activity"
	case KindIncompleteIdentity:
		return "incomplete identity"
	case KindMissingVersionInfo:
		return "missing version info"
	case KindInvalidVersionCode:
		return "invalid version code"
	case KindInvalidVersionName:
		return "invalid version name"
	default:
		return "unknown"
	}
}

// Stage names the pipeline step that produced an error.
type Stage string

const (
	StageArchive  Stage = "archive"
	StageDecode   Stage = "decode"
	StageIdentity Stage = "identity"
	StageVersion  Stage = "version"
)

// Error is the single error type returned by every stage of the pipeline.
// Errors are terminal: the same input always fails the same way.
type Error struct {
	Kind   Kind
	Stage  Stage
	Detail string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Stage != "" {
		b.WriteString(string(e.Stage))
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind, so callers can
// compare against the Err* sentinels regardless of stage or detail.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrEmptyInput            = &Error{Kind: KindEmptyInput}
	ErrInvalidArchive        = &Error{Kind: KindInvalidArchive}
	ErrManifestNotFound      = &Error{Kind: KindManifestNotFound}
	ErrDecodeFailure         = &Error{Kind: KindDecodeFailure}
	ErrManifestUnreadable    = &Error{Kind: KindManifestUnreadable}
	ErrMissingPackageName    = &Error{Kind: KindMissingPackageName}
	ErrMissingLaunchActivity = &Error{Kind: KindMissingLaunchActivity}
	ErrIncompleteIdentity    = &Error{Kind: KindIncompleteIdentity}
	ErrMissingVersionInfo    = &Error{Kind: KindMissingVersionInfo}
	ErrInvalidVersionCode    = &Error{Kind: KindInvalidVersionCode}
	ErrInvalidVersionName    = &Error{Kind: KindInvalidVersionName}
)

// NewError builds an *Error for the given stage.
func NewError(kind Kind, stage Stage, detail string, cause error) *Error {
	return &Error{Kind: kind, Stage: stage, Detail: detail, Err: cause}
}

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// StageOf returns the Stage of the first *Error in err's chain, or "".
func StageOf(err error) Stage {
	var e *Error
	if errors.As(err, &e) {
		return e.Stage
	}
	return ""
}
