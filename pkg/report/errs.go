package report

import "errors"

var (
	ErrNoHeader    = errors.New("report: empty header")
	ErrRowWidth    = errors.New("report: row width does not match header")
	ErrWriteFailed = errors.New("report: write failed")
)
