package document

import "errors"

var (
	ErrNotFound   = errors.New("document template not found")
	ErrBadRequest = errors.New("invalid document template request")
)

func IsErrNotFound(err error) bool   { return errors.Is(err, ErrNotFound) }
func IsErrBadRequest(err error) bool { return errors.Is(err, ErrBadRequest) }
