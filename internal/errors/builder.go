package errors

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// reportableDetailsKey tags the safe-details payload carrying the structured
// details map, so consumers can tell it apart from other safe details.
const reportableDetailsKey = "__json__:%s"

// ErrorBuilder assembles an error in layers: the internal message, an
// operator hint, structured details, and finally the sentinel it is marked
// with. It is not itself an error; the chain must end in Mark (or Error)
// to get one.
type ErrorBuilder struct {
	err error
}

// NewError opens a chain on a fresh error.
func NewError(msg string) *ErrorBuilder {
	return &ErrorBuilder{err: errors.New(msg)}
}

// WithError opens a chain wrapping an error received from elsewhere, keeping
// its stack and any hints already attached.
func WithError(err error) *ErrorBuilder {
	return &ErrorBuilder{err: err}
}

// WithMessage prefixes internal context. It shows up in logs, not in
// caller-facing output.
func (b *ErrorBuilder) WithMessage(msg string) *ErrorBuilder {
	b.err = errors.WithMessage(b.err, msg)
	return b
}

// WithHint attaches the caller-facing explanation.
func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.err = errors.WithHint(b.err, hint)
	return b
}

func (b *ErrorBuilder) WithHintf(format string, args ...any) *ErrorBuilder {
	b.err = errors.WithHintf(b.err, format, args...)
	return b
}

// WithReportableDetails attaches a details map that survives into the
// serialized error. Values must be JSON-encodable; a map that fails to
// encode is silently dropped rather than failing the chain.
func (b *ErrorBuilder) WithReportableDetails(details map[string]any) *ErrorBuilder {
	marshaled, err := json.Marshal(details)
	if err != nil {
		return b
	}
	b.err = errors.WithSafeDetails(b.err, reportableDetailsKey, errors.Safe(string(marshaled)))
	return b
}

// Mark closes the chain, tying the error to one of the package sentinels so
// the Is* helpers can classify it.
func (b *ErrorBuilder) Mark(reference error) error {
	b.err = errors.Mark(b.err, reference)
	return b.err
}

// Error closes the chain without a sentinel.
func (b *ErrorBuilder) Error() error {
	return b.err
}
