// Package decoerr defines the typed failure discriminants returned by the
// decompression engine. Callers are expected to switch on the registered
// error codes (via errors.Is against the sentinel values below) rather than
// matching on message strings, per the engine's error-handling contract.
package decoerr

import (
	cosmoserr "cosmossdk.io/errors"
)

// codespace namespaces this package's registered codes so they cannot
// collide with codes registered by unrelated packages sharing the same
// process.
const codespace = "decoengine"

var (
	// ErrInvalidGasMix signals a GasMix whose fractions fall outside
	// [0,1] or do not sum to 1 within tolerance.
	ErrInvalidGasMix = cosmoserr.Register(codespace, 1, "invalid gas mix")

	// ErrInvalidDepth signals a negative depth, or one exceeding the
	// configured maximum.
	ErrInvalidDepth = cosmoserr.Register(codespace, 2, "invalid depth")

	// ErrInvalidSegments signals an empty segment list, a segment with
	// non-positive duration or depth, or a segment count above
	// MaxSegments.
	ErrInvalidSegments = cosmoserr.Register(codespace, 3, "invalid segments")

	// ErrInvalidRates signals a non-positive descent or ascent rate.
	ErrInvalidRates = cosmoserr.Register(codespace, 4, "invalid ascent/descent rate")

	// ErrInvalidGradientFactors signals gfLow > gfHigh or either value
	// outside [10,100].
	ErrInvalidGradientFactors = cosmoserr.Register(codespace, 5, "invalid gradient factors")

	// ErrCalculationDiverged signals the scheduler's stop-finding loop
	// hit its iteration cap. Should not occur for valid inputs. The
	// schedulers do not return it: on hitting the cap they return a
	// best-effort DiveProfile carrying a danger-level warning and a nil
	// error.
	ErrCalculationDiverged = cosmoserr.Register(codespace, 6, "calculation diverged")
)

// Wrap annotates err with msg while preserving errors.Is/As compatibility
// with the sentinel codes above.
func Wrap(err error, msg string) error {
	return cosmoserr.Wrap(err, msg)
}

// Wrapf annotates err with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return cosmoserr.Wrapf(err, format, args...)
}
