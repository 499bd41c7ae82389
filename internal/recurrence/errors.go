package recurrence

import "errors"

var (
	// ErrSeriesLocked: an occurrence is already paid or confirmed.
	ErrSeriesLocked = errors.New("series has paid or confirmed occurrences")
	// ErrActionNotOffered: the item is no longer in its pending state.
	ErrActionNotOffered = errors.New("action not offered for this occurrence")
	ErrNotFound         = errors.New("occurrence not found in series")
	ErrBadRequest       = errors.New("bad request")
)

func IsErrSeriesLocked(err error) bool     { return errors.Is(err, ErrSeriesLocked) }
func IsErrActionNotOffered(err error) bool { return errors.Is(err, ErrActionNotOffered) }
func IsErrNotFound(err error) bool         { return errors.Is(err, ErrNotFound) }
func IsErrBadRequest(err error) bool       { return errors.Is(err, ErrBadRequest) }
