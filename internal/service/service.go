// Package service hosts the application services that orchestrate the billing
// core: subscription lifecycle, invoicing and tenant provisioning. Services
// hold no state of their own; everything flows through the repositories and
// the event publisher handed in via ServiceParams.
package service

import (
	"github.com/subplane/subplane/internal/clock"
	"github.com/subplane/subplane/internal/config"
	"github.com/subplane/subplane/internal/domain/edition"
	"github.com/subplane/subplane/internal/domain/invoice"
	"github.com/subplane/subplane/internal/domain/subscription"
	"github.com/subplane/subplane/internal/domain/tenant"
	"github.com/subplane/subplane/internal/logger"
	"github.com/subplane/subplane/internal/publisher"
)

// ServiceParams bundles the dependencies shared by all services so that
// constructors stay short and wiring happens in one place.
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	Clock  clock.Clock

	EditionRepo    edition.Repository
	SubRepo        subscription.Repository
	InvoiceRepo    invoice.Repository
	TenantMgr      tenant.Manager
	EventPublisher publisher.EventPublisher
}
