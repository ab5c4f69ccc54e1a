package tenant

import (
	"strings"

	ierr "github.com/subplane/subplane/internal/errors"
	"github.com/subplane/subplane/internal/types"
)

const maxNameLength = 64

// Tenant is the billing core's view of a provisioned customer organization.
// Identity, membership and everything else about the tenant lives in the
// tenant management service; only the handle needed for billing is kept here.
type Tenant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	types.BaseModel
}

// New validates the tenant name and builds a tenant.
func New(id, name string, base types.BaseModel) (*Tenant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ierr.NewError("tenant name cannot be empty").
			WithHint("Please provide a tenant name").
			Mark(ierr.ErrValidation)
	}
	if len(name) > maxNameLength {
		return nil, ierr.NewError("tenant name too long").
			WithHintf("Tenant name must be at most %d characters", maxNameLength).
			WithReportableDetails(map[string]any{
				"name":   name,
				"length": len(name),
			}).
			Mark(ierr.ErrValidation)
	}
	return &Tenant{ID: id, Name: name, BaseModel: base}, nil
}
