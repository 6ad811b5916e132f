package config

import "errors"

var (
	ErrFormat  = errors.New("config: malformed parameter file")
	ErrMissing = errors.New("config: required field missing")
	ErrNumber  = errors.New("config: invalid number")
)
