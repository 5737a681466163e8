package asn1

import "github.com/pkg/errors"

// Structural errors produced by Parse. Wrapped with github.com/pkg/errors
// so callers get a stack trace and identity via errors.Is / errors.As
// against the package-level sentinels below.
var (
	ErrTruncated         = errors.New("asn1: truncated field")
	ErrExcessiveDepth    = errors.New("asn1: excessive nesting depth")
	ErrNonMinimalLength  = errors.New("asn1: non-minimal length encoding")
	ErrIndefiniteLength  = errors.New("asn1: indefinite length not allowed")
	ErrTrailingBytes     = errors.New("asn1: trailing bytes after top-level value")
	ErrUnknownTag        = errors.New("asn1: unknown or unexpected tag")
)

// maxDepth bounds recursive descent into constructed values, per the
// protocol's 50-level cap on nested TLVs.
const maxDepth = 50
