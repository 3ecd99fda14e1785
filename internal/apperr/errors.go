package apperr

import "errors"

var (
	ErrNotFound    = errors.New("not found")
	ErrInvalidTip  = errors.New("invalid tip")
	ErrUnavailable = errors.New("store unavailable")
)
