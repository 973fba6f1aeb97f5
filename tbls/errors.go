package tbls

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput reports an empty, truncated or otherwise malformed
	// encoding, or an argument outside the protocol's domain.
	ErrInvalidInput = errors.New("tbls: invalid input")

	// ErrRandomnessUnavailable reports a failure of the entropy source.
	// It is never retried here.
	ErrRandomnessUnavailable = errors.New("tbls: randomness unavailable")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
