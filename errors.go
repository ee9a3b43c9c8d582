package textlayout

import "errors"

var (
	// ErrNilCollection is returned when an engine is given no fonts.
	ErrNilCollection = errors.New("textlayout: font collection is nil")

	// ErrInvalidResolution is returned for a resolution level that is not
	// a positive finite number.
	ErrInvalidResolution = errors.New("textlayout: resolution level must be positive")

	// ErrReloading is returned by Reload and Invalidate when called while
	// a reload is in progress, for example from a logging handler.
	ErrReloading = errors.New("textlayout: engine is reloading")
)
