// ABOUTME: Error taxonomy for resolving and installing packages
// ABOUTME: Sentinels match with errors.Is; InstallError/StatusError carry context

package pkgmanager

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidSlug     = errors.New("invalid slug")
	ErrParse           = errors.New("malformed manifest")
	ErrFetch           = errors.New("fetch failed")
	ErrDirectoryCreate = errors.New("cannot create directory")
	ErrManifestWrite   = errors.New("cannot write manifest")
	ErrFileDownload    = errors.New("file download failed")

	// ErrPartialManifest is never returned; it marks entries in Manifest.Issues.
	ErrPartialManifest = errors.New("partial manifest")
)

// InstallError reports which package and which step of its install failed.
type InstallError struct {
	Package string // slug of the failing package
	Op      string // "resolve", "mkdir", "write", "download", ...
	Err     error
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Package, e.Op, e.Err)
}

func (e *InstallError) Unwrap() error { return e.Err }

// StatusError is returned by HTTPFetcher for non-200 responses.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.Code, e.URL)
}

// partial builds a Manifest.Issues entry.
func partial(field string, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrPartialManifest, field, fmt.Sprintf(format, args...))
}
