package service

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/subplane/subplane/internal/domain/edition"
	"github.com/subplane/subplane/internal/domain/subscription"
	ierr "github.com/subplane/subplane/internal/errors"
	"github.com/subplane/subplane/internal/events"
	"github.com/subplane/subplane/internal/testutil"
	"github.com/subplane/subplane/internal/types"
)

type SubscriptionServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  SubscriptionService
	editions EditionService
	testData struct {
		basic        *edition.Edition
		professional *edition.Edition
		retired      *edition.Edition
	}
}

func TestSubscriptionService(t *testing.T) {
	suite.Run(t, new(SubscriptionServiceSuite))
}

func (s *SubscriptionServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	params := s.serviceParams()
	s.service = NewSubscriptionService(params)
	s.editions = NewEditionService(params)
	s.setupTestData()
}

func (s *SubscriptionServiceSuite) serviceParams() ServiceParams {
	stores := s.GetStores()
	return ServiceParams{
		Logger:         s.GetLogger(),
		Config:         s.GetConfig(),
		Clock:          s.GetClock(),
		EditionRepo:    stores.EditionRepo,
		SubRepo:        stores.SubRepo,
		InvoiceRepo:    stores.InvoiceRepo,
		TenantMgr:      stores.TenantMgr,
		EventPublisher: s.GetPublisher(),
	}
}

func (s *SubscriptionServiceSuite) usd(amount int64) types.Money {
	return types.MustNewMoney(decimal.NewFromInt(amount), "USD")
}

func (s *SubscriptionServiceSuite) setupTestData() {
	var err error
	s.testData.basic, err = s.editions.CreateEdition(s.GetContext(), CreateEditionRequest{
		Name:          "basic",
		DisplayName:   "Basic",
		MonthlyPrice:  s.usd(100),
		YearlyPrice:   s.usd(1000),
		FeatureLimits: edition.BasicLimits(),
	})
	s.Require().NoError(err)

	s.testData.professional, err = s.editions.CreateEdition(s.GetContext(), CreateEditionRequest{
		Name:          "professional",
		DisplayName:   "Professional",
		MonthlyPrice:  s.usd(150),
		YearlyPrice:   s.usd(1500),
		FeatureLimits: edition.ProfessionalLimits(),
	})
	s.Require().NoError(err)

	s.testData.retired, err = s.editions.CreateEdition(s.GetContext(), CreateEditionRequest{
		Name:          "legacy",
		DisplayName:   "Legacy",
		MonthlyPrice:  s.usd(50),
		YearlyPrice:   s.usd(500),
		FeatureLimits: edition.FreeLimits(),
	})
	s.Require().NoError(err)
	s.Require().NoError(s.editions.DeactivateEdition(s.GetContext(), s.testData.retired.ID))
	s.GetPublisher().Clear()
}

func (s *SubscriptionServiceSuite) TestCreateTrialSubscription() {
	// Clock starts at 2025-01-01; a 14-day trial runs to 2025-01-15.
	sub, err := s.service.CreateSubscription(s.GetContext(), CreateSubscriptionRequest{
		TenantID:      lo.ToPtr("tenant_a"),
		EditionID:     s.testData.basic.ID,
		BillingPeriod: types.BillingPeriodMonthly,
		AutoRenew:     true,
		TrialDays:     lo.ToPtr(14),
	})
	s.Require().NoError(err)

	s.Equal(types.SubscriptionStatusTrial, sub.Status)
	s.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), sub.SubscriptionPeriod.Start)
	s.Equal(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), sub.SubscriptionPeriod.End)
	s.Require().NotNil(sub.NextBillingDate)
	s.Equal(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), *sub.NextBillingDate)
}

func (s *SubscriptionServiceSuite) TestCreateSubscriptionInactiveEdition() {
	_, err := s.service.CreateSubscription(s.GetContext(), CreateSubscriptionRequest{
		TenantID:      lo.ToPtr("tenant_a"),
		EditionID:     s.testData.retired.ID,
		BillingPeriod: types.BillingPeriodMonthly,
	})
	s.Require().Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *SubscriptionServiceSuite) TestCreateSubscriptionSingleActivePerTenant() {
	req := CreateSubscriptionRequest{
		TenantID:      lo.ToPtr("tenant_a"),
		EditionID:     s.testData.basic.ID,
		BillingPeriod: types.BillingPeriodMonthly,
	}
	_, err := s.service.CreateSubscription(s.GetContext(), req)
	s.Require().NoError(err)

	_, err = s.service.CreateSubscription(s.GetContext(), req)
	s.Require().Error(err)
	s.True(ierr.IsAlreadyExists(err))

	// A different tenant is unaffected.
	req.TenantID = lo.ToPtr("tenant_b")
	_, err = s.service.CreateSubscription(s.GetContext(), req)
	s.NoError(err)
}

func (s *SubscriptionServiceSuite) TestCreateSubscriptionZeroPriceNeedsTrial() {
	_, err := s.service.CreateSubscription(s.GetContext(), CreateSubscriptionRequest{
		TenantID:      lo.ToPtr("tenant_a"),
		EditionID:     s.testData.basic.ID,
		BillingPeriod: types.BillingPeriodMonthly,
		CustomPrice:   lo.ToPtr(types.ZeroMoney("USD")),
	})
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))

	sub, err := s.service.CreateSubscription(s.GetContext(), CreateSubscriptionRequest{
		TenantID:      lo.ToPtr("tenant_a"),
		EditionID:     s.testData.basic.ID,
		BillingPeriod: types.BillingPeriodMonthly,
		TrialDays:     lo.ToPtr(14),
		CustomPrice:   lo.ToPtr(types.ZeroMoney("USD")),
	})
	s.Require().NoError(err)
	s.True(sub.Price.IsZero())
}

func (s *SubscriptionServiceSuite) TestCreateSubscriptionCustomPriceCurrencyMismatch() {
	// A 100 EUR override on a USD-priced edition would poison later proration.
	_, err := s.service.CreateSubscription(s.GetContext(), CreateSubscriptionRequest{
		TenantID:      lo.ToPtr("tenant_a"),
		EditionID:     s.testData.basic.ID,
		BillingPeriod: types.BillingPeriodMonthly,
		CustomPrice:   lo.ToPtr(types.MustNewMoney(decimal.NewFromInt(100), "EUR")),
	})
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *SubscriptionServiceSuite) TestCreateHostSubscriptionsGated() {
	req := CreateSubscriptionRequest{
		EditionID:     s.testData.basic.ID,
		BillingPeriod: types.BillingPeriodMonthly,
	}
	_, err := s.service.CreateSubscription(s.GetContext(), req)
	s.Require().Error(err)
	s.True(ierr.IsInvalidOperation(err))

	s.GetConfig().Billing.HostSubscriptions = true
	defer func() { s.GetConfig().Billing.HostSubscriptions = false }()

	sub, err := s.service.CreateSubscription(s.GetContext(), req)
	s.Require().NoError(err)
	s.Nil(sub.TenantID)
}

func (s *SubscriptionServiceSuite) TestRenewTrialSubscription() {
	sub, err := s.service.CreateSubscription(s.GetContext(), CreateSubscriptionRequest{
		TenantID:      lo.ToPtr("tenant_a"),
		EditionID:     s.testData.basic.ID,
		BillingPeriod: types.BillingPeriodMonthly,
		AutoRenew:     true,
		TrialDays:     lo.ToPtr(14),
	})
	s.Require().NoError(err)

	s.GetClock().Set(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
	renewed, err := s.service.RenewSubscription(s.GetContext(), sub.ID)
	s.Require().NoError(err)

	s.Equal(types.SubscriptionStatusActive, renewed.Status)
	s.Equal(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), renewed.SubscriptionPeriod.Start)
	s.Equal(time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC), renewed.SubscriptionPeriod.End)
	s.True(renewed.Price.Equal(s.usd(100)), "renewal picks up the edition list price")

	renewEvents := s.GetPublisher().EventsByName(events.EventSubscriptionRenewed)
	s.Require().Len(renewEvents, 1)
	ev := renewEvents[0].(*events.SubscriptionRenewed)
	s.Equal(sub.ID, ev.SubscriptionID)
	s.Equal(time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC), ev.NewEndDate)
}

func (s *SubscriptionServiceSuite) TestRenewPicksUpRepricedEdition() {
	sub, err := s.service.CreateSubscription(s.GetContext(), CreateSubscriptionRequest{
		TenantID:      lo.ToPtr("tenant_a"),
		EditionID:     s.testData.basic.ID,
		BillingPeriod: types.BillingPeriodMonthly,
		AutoRenew:     true,
	})
	s.Require().NoError(err)
	s.True(sub.Price.Equal(s.usd(100)))

	_, err = s.editions.UpdateEditionPricing(s.GetContext(), s.testData.basic.ID, s.usd(120), s.usd(1200))
	s.Require().NoError(err)

	renewed, err := s.service.RenewSubscription(s.GetContext(), sub.ID)
	s.Require().NoError(err)
	s.True(renewed.Price.Equal(s.usd(120)))
}

func (s *SubscriptionServiceSuite) TestRenewSuspendedRejected() {
	sub, err := s.service.CreateSubscription(s.GetContext(), CreateSubscriptionRequest{
		TenantID:      lo.ToPtr("tenant_a"),
		EditionID:     s.testData.basic.ID,
		BillingPeriod: types.BillingPeriodMonthly,
	})
	s.Require().NoError(err)
	s.Require().NoError(s.service.SuspendSubscription(s.GetContext(), sub.ID, "payment failure"))

	_, err = s.service.RenewSubscription(s.GetContext(), sub.ID)
	s.Require().Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *SubscriptionServiceSuite) TestRenewDeactivatedEditionRejected() {
	sub, err := s.service.CreateSubscription(s.GetContext(), CreateSubscriptionRequest{
		TenantID:      lo.ToPtr("tenant_a"),
		EditionID:     s.testData.basic.ID,
		BillingPeriod: types.BillingPeriodMonthly,
		AutoRenew:     true,
	})
	s.Require().NoError(err)
	s.Require().NoError(s.editions.DeactivateEdition(s.GetContext(), s.testData.basic.ID))

	// The subscription keeps running on the dead edition, but its cycle
	// cannot be extended.
	s.GetClock().Set(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	_, err = s.service.RenewSubscription(s.GetContext(), sub.ID)
	s.Require().Error(err)
	s.True(ierr.IsInvalidOperation(err))

	got, err := s.service.GetSubscription(s.GetContext(), sub.ID)
	s.Require().NoError(err)
	s.Equal(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), got.SubscriptionPeriod.End)
}

func (s *SubscriptionServiceSuite) TestSuspendRequiresReason() {
	sub, err := s.service.CreateSubscription(s.GetContext(), CreateSubscriptionRequest{
		TenantID:      lo.ToPtr("tenant_a"),
		EditionID:     s.testData.basic.ID,
		BillingPeriod: types.BillingPeriodMonthly,
	})
	s.Require().NoError(err)

	err = s.service.SuspendSubscription(s.GetContext(), sub.ID, "")
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))

	s.Require().NoError(s.service.SuspendSubscription(s.GetContext(), sub.ID, "payment failure"))
	got, err := s.service.GetSubscription(s.GetContext(), sub.ID)
	s.Require().NoError(err)
	s.Equal(types.SubscriptionStatusSuspended, got.Status)
}

func (s *SubscriptionServiceSuite) TestUpgradeProration() {
	// 100 USD/month on basic; upgrade to professional (150 USD/month) with
	// 15 of the fixed 30 cycle days remaining: credit 50, first cycle 100.
	sub, err := s.service.CreateSubscription(s.GetContext(), CreateSubscriptionRequest{
		TenantID:      lo.ToPtr("tenant_a"),
		EditionID:     s.testData.basic.ID,
		BillingPeriod: types.BillingPeriodMonthly,
		AutoRenew:     true,
	})
	s.Require().NoError(err)

	// Period runs 2025-01-01 to 2025-02-01; 15 days remain at 2025-01-17.
	s.GetClock().Set(time.Date(2025, 1, 17, 0, 0, 0, 0, time.UTC))

	result, err := s.service.UpgradeSubscription(s.GetContext(), ChangeEditionRequest{
		SubscriptionID: sub.ID,
		NewEditionID:   s.testData.professional.ID,
	})
	s.Require().NoError(err)

	s.True(result.ProratedCredit.Equal(s.usd(50)), "got %s", result.ProratedCredit)
	s.True(result.Subscription.Price.Equal(s.usd(100)), "got %s", result.Subscription.Price)
	s.Equal(s.testData.professional.ID, result.Subscription.EditionID)
	s.Equal(types.SubscriptionStatusActive, result.Subscription.Status)

	old, err := s.service.GetSubscription(s.GetContext(), sub.ID)
	s.Require().NoError(err)
	s.Equal(types.SubscriptionStatusCancelled, old.Status)
	s.Len(s.GetPublisher().EventsByName(events.EventSubscriptionCancelled), 1)
}

func (s *SubscriptionServiceSuite) TestUpgradePriceFlooredAtZero() {
	// Credit larger than the new price: 100 * 29/30 = 96.67 credit against a
	// 50 USD edition would go negative without the floor.
	cheap, err := s.editions.CreateEdition(s.GetContext(), CreateEditionRequest{
		Name:          "cheap",
		DisplayName:   "Cheap",
		MonthlyPrice:  s.usd(50),
		YearlyPrice:   s.usd(500),
		FeatureLimits: edition.FreeLimits(),
	})
	s.Require().NoError(err)

	sub, err := s.service.CreateSubscription(s.GetContext(), CreateSubscriptionRequest{
		TenantID:      lo.ToPtr("tenant_a"),
		EditionID:     s.testData.basic.ID,
		BillingPeriod: types.BillingPeriodMonthly,
	})
	s.Require().NoError(err)

	s.GetClock().Set(time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC))
	result, err := s.service.UpgradeSubscription(s.GetContext(), ChangeEditionRequest{
		SubscriptionID: sub.ID,
		NewEditionID:   cheap.ID,
	})
	s.Require().NoError(err)
	s.True(result.Subscription.Price.IsZero())
	s.False(result.Subscription.Price.IsNegative())
}

func (s *SubscriptionServiceSuite) TestUpgradeForeignCurrencyPriceRejected() {
	// A subscription priced in another currency must not be netted against
	// USD list prices; the change is refused instead of mixing currencies.
	sub, err := subscription.New(
		types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION),
		lo.ToPtr("tenant_eur"),
		s.testData.basic.ID,
		types.BillingPeriodMonthly,
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		types.MustNewMoney(decimal.NewFromInt(100), "EUR"),
		true,
		nil,
		types.GetDefaultBaseModel(s.GetContext()),
	)
	s.Require().NoError(err)
	s.Require().NoError(s.GetStores().SubRepo.Create(s.GetContext(), sub))

	s.GetClock().Set(time.Date(2025, 1, 17, 0, 0, 0, 0, time.UTC))
	_, err = s.service.UpgradeSubscription(s.GetContext(), ChangeEditionRequest{
		SubscriptionID: sub.ID,
		NewEditionID:   s.testData.professional.ID,
	})
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))

	// Nothing moved: the subscription stays active on its old edition.
	got, err := s.service.GetSubscription(s.GetContext(), sub.ID)
	s.Require().NoError(err)
	s.Equal(types.SubscriptionStatusActive, got.Status)
	s.Equal(s.testData.basic.ID, got.EditionID)
}

func (s *SubscriptionServiceSuite) TestDowngradeTakesEffectAtPeriodEnd() {
	sub, err := s.service.CreateSubscription(s.GetContext(), CreateSubscriptionRequest{
		TenantID:      lo.ToPtr("tenant_a"),
		EditionID:     s.testData.professional.ID,
		BillingPeriod: types.BillingPeriodMonthly,
		AutoRenew:     true,
	})
	s.Require().NoError(err)

	s.GetClock().Set(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))
	newSub, err := s.service.DowngradeSubscription(s.GetContext(), ChangeEditionRequest{
		SubscriptionID: sub.ID,
		NewEditionID:   s.testData.basic.ID,
	})
	s.Require().NoError(err)

	old, err := s.service.GetSubscription(s.GetContext(), sub.ID)
	s.Require().NoError(err)
	s.Equal(types.SubscriptionStatusActive, old.Status, "current plan runs out its paid period")
	s.False(old.AutoRenew)

	s.Equal(old.SubscriptionPeriod.End, newSub.SubscriptionPeriod.Start)
	s.True(newSub.Price.Equal(s.usd(100)))
	s.False(newSub.AutoRenew)
}

func (s *SubscriptionServiceSuite) TestCancelSubscriptionPublishesEvent() {
	sub, err := s.service.CreateSubscription(s.GetContext(), CreateSubscriptionRequest{
		TenantID:      lo.ToPtr("tenant_a"),
		EditionID:     s.testData.basic.ID,
		BillingPeriod: types.BillingPeriodMonthly,
	})
	s.Require().NoError(err)

	s.Require().NoError(s.service.CancelSubscription(s.GetContext(), sub.ID, "churn"))

	cancelled := s.GetPublisher().EventsByName(events.EventSubscriptionCancelled)
	s.Require().Len(cancelled, 1)
	ev := cancelled[0].(*events.SubscriptionCancelled)
	s.Equal("churn", ev.CancellationReason)

	// Cancelling again is rejected, and no second event goes out.
	err = s.service.CancelSubscription(s.GetContext(), sub.ID, "again")
	s.Require().Error(err)
	s.Len(s.GetPublisher().EventsByName(events.EventSubscriptionCancelled), 1)
}

func (s *SubscriptionServiceSuite) TestProcessExpiredSubscriptions() {
	first, err := s.service.CreateSubscription(s.GetContext(), CreateSubscriptionRequest{
		TenantID:      lo.ToPtr("tenant_a"),
		EditionID:     s.testData.basic.ID,
		BillingPeriod: types.BillingPeriodMonthly,
	})
	s.Require().NoError(err)

	s.GetClock().Set(time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC))
	second, err := s.service.CreateSubscription(s.GetContext(), CreateSubscriptionRequest{
		TenantID:      lo.ToPtr("tenant_b"),
		EditionID:     s.testData.basic.ID,
		BillingPeriod: types.BillingPeriodMonthly,
	})
	s.Require().NoError(err)

	// First period ended 2025-02-01; second runs to 2025-02-20.
	s.GetClock().Set(time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC))
	count, err := s.service.ProcessExpiredSubscriptions(s.GetContext())
	s.Require().NoError(err)
	s.Equal(1, count)

	got, err := s.service.GetSubscription(s.GetContext(), first.ID)
	s.Require().NoError(err)
	s.Equal(types.SubscriptionStatusExpired, got.Status)
	s.False(got.AutoRenew)

	got, err = s.service.GetSubscription(s.GetContext(), second.ID)
	s.Require().NoError(err)
	s.Equal(types.SubscriptionStatusActive, got.Status)

	// Idempotent: a second sweep finds nothing.
	count, err = s.service.ProcessExpiredSubscriptions(s.GetContext())
	s.Require().NoError(err)
	s.Equal(0, count)
}

func (s *SubscriptionServiceSuite) TestListExpiringSubscriptions() {
	// Active subscription runs to 2025-02-01; the trial ends 2025-01-15 and
	// must not show up in the renewal window.
	active, err := s.service.CreateSubscription(s.GetContext(), CreateSubscriptionRequest{
		TenantID:      lo.ToPtr("tenant_a"),
		EditionID:     s.testData.basic.ID,
		BillingPeriod: types.BillingPeriodMonthly,
		AutoRenew:     true,
	})
	s.Require().NoError(err)
	_, err = s.service.CreateSubscription(s.GetContext(), CreateSubscriptionRequest{
		TenantID:      lo.ToPtr("tenant_b"),
		EditionID:     s.testData.basic.ID,
		BillingPeriod: types.BillingPeriodMonthly,
		TrialDays:     lo.ToPtr(14),
	})
	s.Require().NoError(err)

	s.GetClock().Set(time.Date(2025, 1, 25, 0, 0, 0, 0, time.UTC))
	expiring, err := s.service.ListExpiringSubscriptions(s.GetContext(), 7)
	s.Require().NoError(err)
	s.Require().Len(expiring, 1)
	s.Equal(active.ID, expiring[0].ID)

	expiring, err = s.service.ListExpiringSubscriptions(s.GetContext(), 3)
	s.Require().NoError(err)
	s.Empty(expiring)
}

func (s *SubscriptionServiceSuite) TestListExpiringTrials() {
	trial, err := s.service.CreateSubscription(s.GetContext(), CreateSubscriptionRequest{
		TenantID:      lo.ToPtr("tenant_a"),
		EditionID:     s.testData.basic.ID,
		BillingPeriod: types.BillingPeriodMonthly,
		TrialDays:     lo.ToPtr(14),
	})
	s.Require().NoError(err)
	_, err = s.service.CreateSubscription(s.GetContext(), CreateSubscriptionRequest{
		TenantID:      lo.ToPtr("tenant_b"),
		EditionID:     s.testData.basic.ID,
		BillingPeriod: types.BillingPeriodMonthly,
	})
	s.Require().NoError(err)

	// Trial ends 2025-01-15.
	s.GetClock().Set(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))
	expiring, err := s.service.ListExpiringTrials(s.GetContext(), 7)
	s.Require().NoError(err)
	s.Require().Len(expiring, 1)
	s.Equal(trial.ID, expiring[0].ID)

	expiring, err = s.service.ListExpiringTrials(s.GetContext(), 2)
	s.Require().NoError(err)
	s.Empty(expiring)
}

func (s *SubscriptionServiceSuite) TestDeleteEditionGuardedBySubscriptions() {
	sub, err := s.service.CreateSubscription(s.GetContext(), CreateSubscriptionRequest{
		TenantID:      lo.ToPtr("tenant_a"),
		EditionID:     s.testData.basic.ID,
		BillingPeriod: types.BillingPeriodMonthly,
	})
	s.Require().NoError(err)

	err = s.editions.DeleteEdition(s.GetContext(), s.testData.basic.ID)
	s.Require().Error(err)
	s.True(ierr.IsInvalidOperation(err))

	s.Require().NoError(s.service.CancelSubscription(s.GetContext(), sub.ID, "cleanup"))
	s.NoError(s.editions.DeleteEdition(s.GetContext(), s.testData.basic.ID))
}

func (s *SubscriptionServiceSuite) TestValidateFeatureLimit() {
	sub, err := s.service.CreateSubscription(s.GetContext(), CreateSubscriptionRequest{
		TenantID:      lo.ToPtr("tenant_a"),
		EditionID:     s.testData.basic.ID,
		BillingPeriod: types.BillingPeriodMonthly,
	})
	s.Require().NoError(err)

	ok, err := s.service.ValidateFeatureLimit(s.GetContext(), sub.ID, edition.FeatureMaxUsers, 24)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.service.ValidateFeatureLimit(s.GetContext(), sub.ID, edition.FeatureMaxUsers, 25)
	s.Require().NoError(err)
	s.False(ok)

	ok, err = s.service.ValidateFeatureLimit(s.GetContext(), sub.ID, edition.FeatureMaxProjects, 10)
	s.Require().NoError(err)
	s.False(ok)

	// Unknown features default open.
	ok, err = s.service.ValidateFeatureLimit(s.GetContext(), sub.ID, "holographic_exports", 1_000_000)
	s.Require().NoError(err)
	s.True(ok)
}
