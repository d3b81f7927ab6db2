package restore

import "fmt"

// ErrNoMountableFilesystem is the single user-visible failure mode named
// by the distilled spec: "no mountable filesystem present; the caller
// may format." Every fatal path the driver can take is wrapped in this
// before it reaches the caller.
type ErrNoMountableFilesystem struct {
	Cause error
}

func (e *ErrNoMountableFilesystem) Error() string {
	if e.Cause == nil {
		return "no mountable filesystem present"
	}
	return fmt.Sprintf("no mountable filesystem present: %v", e.Cause)
}
func (e *ErrNoMountableFilesystem) Unwrap() error { return e.Cause }

// ErrStrictCorruption is returned instead of a silent truncated scan
// when the strict-scan diagnostic is enabled and a mid-area record fails
// to parse.
type ErrStrictCorruption struct {
	AreaIndex int
	Offset    int64
	Cause     error
}

func (e *ErrStrictCorruption) Error() string {
	return fmt.Sprintf("strict scan: area %d offset %d: %v", e.AreaIndex, e.Offset, e.Cause)
}
func (e *ErrStrictCorruption) Unwrap() error { return e.Cause }

// ErrInvalid marks a state the pipeline considers structurally
// impossible to reach through normal operation — an unresolved tag, a
// caller argument outside its documented domain. Unlike *ErrCorrupt it
// is never a property of the flash contents; it always indicates a bug.
type ErrInvalid struct {
	Reason string
}

func (e *ErrInvalid) Error() string { return "invalid: " + e.Reason }
