package joining

import "errors"

var (
	ErrNotFound   = errors.New("joining request not found")
	ErrDuplicate  = errors.New("joining request already exists")
	ErrValidation = errors.New("joining request validation failed")
	ErrBadRequest = errors.New("invalid joining request")
	ErrForbidden  = errors.New("joining request does not belong to user")
)

func IsErrNotFound(err error) bool   { return errors.Is(err, ErrNotFound) }
func IsErrDuplicate(err error) bool  { return errors.Is(err, ErrDuplicate) }
func IsErrValidation(err error) bool { return errors.Is(err, ErrValidation) }
func IsErrBadRequest(err error) bool { return errors.Is(err, ErrBadRequest) }
func IsErrForbidden(err error) bool  { return errors.Is(err, ErrForbidden) }
