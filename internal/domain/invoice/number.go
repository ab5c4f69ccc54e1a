package invoice

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	ierr "github.com/subplane/subplane/internal/errors"
)

// Number is a human-readable invoice identifier of the form
// INV-YYYY-MM-XXXXXXXX-NNNN, where XXXXXXXX is an 8-character uppercase tenant
// prefix and NNNN a zero-padded per-tenant sequence.
type Number string

const (
	numberPrefix     = "INV"
	tenantPrefixLen  = 8
	sequencePadWidth = 4
)

// GenerateNumber builds the invoice number for a tenant at the given issue
// date and sequence position.
func GenerateNumber(tenantID string, issueDate time.Time, sequence int) (Number, error) {
	if strings.TrimSpace(tenantID) == "" {
		return "", ierr.NewError("tenant id cannot be empty").
			WithHint("Invoice numbers are scoped per tenant").
			Mark(ierr.ErrValidation)
	}
	if sequence < 1 {
		return "", ierr.NewError("invoice sequence must be positive").
			WithReportableDetails(map[string]any{
				"sequence": sequence,
			}).
			Mark(ierr.ErrValidation)
	}

	// Separators are stripped so the prefix stays a single dash-separated
	// segment of the number.
	replacer := strings.NewReplacer("-", "", "_", "")
	prefix := strings.ToUpper(replacer.Replace(tenantID))
	if len(prefix) > tenantPrefixLen {
		prefix = prefix[:tenantPrefixLen]
	}

	return Number(fmt.Sprintf("%s-%04d-%02d-%s-%0*d",
		numberPrefix,
		issueDate.Year(),
		int(issueDate.Month()),
		prefix,
		sequencePadWidth,
		sequence,
	)), nil
}

// SequenceOf extracts the per-tenant sequence, always the final
// dash-separated segment of the number.
func (n Number) SequenceOf() (int, error) {
	parts := strings.Split(string(n), "-")
	if len(parts) < 5 || parts[0] != numberPrefix {
		return 0, ierr.NewError("malformed invoice number").
			WithReportableDetails(map[string]any{
				"invoice_number": string(n),
			}).
			Mark(ierr.ErrValidation)
	}
	seq, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil || seq < 1 {
		return 0, ierr.NewError("malformed invoice number sequence").
			WithReportableDetails(map[string]any{
				"invoice_number": string(n),
			}).
			Mark(ierr.ErrValidation)
	}
	return seq, nil
}

func (n Number) String() string {
	return string(n)
}
