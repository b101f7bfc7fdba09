package common

import "errors"

var (
	ErrorInvalidConfiguration = errors.New("invalid configuration")
	ErrorInvalidValue         = errors.New("invalid value")
	ErrorEmptySample          = errors.New("empty sample")
)
