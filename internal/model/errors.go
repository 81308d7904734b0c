package model

import (
	"errors"
	"fmt"
)

// ErrConflictingFilter is returned by NewFilter when --all is combined with
// an explicit package list.
var ErrConflictingFilter = errors.New("cannot specify --all and --package")

// ErrNoPackagesMatched is returned when selection produced no target paths.
// The selector itself treats an empty result as valid; the check workflow
// promotes it to a usage error.
var ErrNoPackagesMatched = errors.New("did not find matching package(s)")

// ErrViolationsFound signals that the check completed but at least one file
// is missing the required prefix. The violating paths have already been
// printed when this error reaches the exit-code dispatcher.
var ErrViolationsFound = errors.New("found files without the required prefix")

// ManifestNotFoundError reports a manifest path that does not exist on disk.
type ManifestNotFoundError struct {
	Path Path
}

func (e *ManifestNotFoundError) Error() string {
	return fmt.Sprintf("could not find %s", e.Path)
}

// ManifestInvalidError reports a manifest that exists but does not describe
// a valid workspace.
type ManifestInvalidError struct {
	Path Path
	Err  error
}

func (e *ManifestInvalidError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("error parsing %s", e.Path)
	}

	return fmt.Sprintf("error parsing %s: %v", e.Path, e.Err)
}

func (e *ManifestInvalidError) Unwrap() error {
	return e.Err
}

// PrefixUnreadableError reports a prefix pattern file that could not be read.
type PrefixUnreadableError struct {
	Path Path
	Err  error
}

func (e *PrefixUnreadableError) Error() string {
	return fmt.Sprintf("error reading prefix-path file %s", e.Path)
}

func (e *PrefixUnreadableError) Unwrap() error {
	return e.Err
}
