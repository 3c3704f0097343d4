package types

import "errors"

var (
	ErrHostNotFound      = errors.New("host not found")
	ErrUnsupportedDriver = errors.New("unsupported database driver")
	ErrUnsupportedFormat = errors.New("unsupported output format")
)
