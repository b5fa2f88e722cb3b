package canonical

import (
	crerr "github.com/cockroachdb/errors"
)

// ErrValidation marks inputs that decode into a recognizable shape but fail a
// business rule (a height of 300cm, a season named "2024/25", ...).
var ErrValidation = crerr.New("validation failed")

func validationf(format string, args ...any) error {
	return crerr.Mark(crerr.Newf(format, args...), ErrValidation)
}

// IsValidation reports whether err was raised by a canonical type constructor.
func IsValidation(err error) bool {
	return crerr.Is(err, ErrValidation)
}
