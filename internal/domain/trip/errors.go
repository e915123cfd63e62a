package trip

import "errors"

var (
	ErrNotFound   = errors.New("trip not found")
	ErrBadRequest = errors.New("invalid trip request")
	ErrForbidden  = errors.New("trip does not belong to organizer")
)

func IsErrNotFound(err error) bool   { return errors.Is(err, ErrNotFound) }
func IsErrBadRequest(err error) bool { return errors.Is(err, ErrBadRequest) }
func IsErrForbidden(err error) bool  { return errors.Is(err, ErrForbidden) }
