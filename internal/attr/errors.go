package attr

import (
	"errors"
	"fmt"
)

var ErrAttribution = errors.New("dependency attribution failed")

// AttributionError is the fatal failure mode of an ownership-index build.
// It always identifies the archive whose contents could not be read, so the
// failure is diagnosable as an attribution problem rather than a downstream
// build problem.
type AttributionError struct {
	Kind    error
	Archive string
	Err     error
}

func (e *AttributionError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: archive %s", e.Kind.Error(), e.Archive)
	}
	return fmt.Sprintf("%s: archive %s: %v", e.Kind.Error(), e.Archive, e.Err)
}

func (e *AttributionError) Unwrap() error { return e.Kind }

func archiveError(path string, err error) error {
	return &AttributionError{Kind: ErrAttribution, Archive: path, Err: err}
}
