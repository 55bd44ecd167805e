package fifotoken

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrInterrupted is matched by errors returned when a caller's context is
	// done while it waits in Acquire or Renew. Those errors also match the
	// context's own error.
	ErrInterrupted = errors.New("fifotoken: interrupted while waiting")

	// ErrNotOwner is matched by errors returned when Release or Renew is called
	// by someone that does not hold the Token.
	ErrNotOwner = errors.New("fifotoken: caller does not hold the token")

	// ErrNoOwner is returned when a context without an Owner is used.
	ErrNoOwner = errors.New("fifotoken: context carries no owner")
)

func interrupted(cause error, o Owner) error {
	return errors.Mark(errors.Wrapf(cause, "fifotoken: %s interrupted while waiting", o), ErrInterrupted)
}

func notOwner(op string, caller, holder Owner) error {
	return errors.Wrapf(ErrNotOwner, "%s by %s (held by %s)", op, caller, holder)
}
