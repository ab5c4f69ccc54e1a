package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/subplane/subplane/internal/clock"
	"github.com/subplane/subplane/internal/config"
	"github.com/subplane/subplane/internal/domain/edition"
	"github.com/subplane/subplane/internal/domain/invoice"
	"github.com/subplane/subplane/internal/domain/subscription"
	"github.com/subplane/subplane/internal/domain/tenant"
	"github.com/subplane/subplane/internal/logger"
	"github.com/subplane/subplane/internal/validator"
)

// Stores holds the repository interfaces backed by in-memory implementations.
type Stores struct {
	EditionRepo edition.Repository
	SubRepo     subscription.Repository
	InvoiceRepo invoice.Repository
	TenantMgr   tenant.Manager
}

// BaseServiceTestSuite provides common wiring for service test suites: fresh
// in-memory stores per test, a fixed clock, and a recording event publisher.
type BaseServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	stores    Stores
	publisher *InMemoryEventPublisher
	logger    *logger.Logger
	config    *config.Configuration
	clock     *clock.FixedClock
}

// SetupSuite is called once before running the tests in the suite.
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	s.config = config.GetDefaultConfig()
	var err error
	s.logger, err = logger.NewLogger(s.config)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test.
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.stores = Stores{
		EditionRepo: NewInMemoryEditionStore(),
		SubRepo:     NewInMemorySubscriptionStore(),
		InvoiceRepo: NewInMemoryInvoiceStore(),
		TenantMgr:   NewInMemoryTenantManager(),
	}
	s.publisher = NewInMemoryEventPublisher()
	s.clock = clock.NewFixedClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

func (s *BaseServiceTestSuite) GetPublisher() *InMemoryEventPublisher {
	return s.publisher
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

func (s *BaseServiceTestSuite) GetClock() *clock.FixedClock {
	return s.clock
}
