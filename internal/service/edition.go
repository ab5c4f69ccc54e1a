package service

import (
	"context"

	"github.com/subplane/subplane/internal/domain/edition"
	"github.com/subplane/subplane/internal/domain/subscription"
	ierr "github.com/subplane/subplane/internal/errors"
	"github.com/subplane/subplane/internal/events"
	"github.com/subplane/subplane/internal/types"
	"github.com/subplane/subplane/internal/validator"
)

// EditionService manages the plan catalog.
type EditionService interface {
	CreateEdition(ctx context.Context, req CreateEditionRequest) (*edition.Edition, error)
	GetEdition(ctx context.Context, id string) (*edition.Edition, error)
	ListEditions(ctx context.Context) ([]*edition.Edition, error)
	ListActiveEditions(ctx context.Context) ([]*edition.Edition, error)
	UpdateEditionPricing(ctx context.Context, id string, monthly, yearly types.Money) (*edition.Edition, error)
	UpdateEditionLimits(ctx context.Context, id string, limits edition.FeatureLimits) (*edition.Edition, error)
	ActivateEdition(ctx context.Context, id string) error
	DeactivateEdition(ctx context.Context, id string) error
	DeleteEdition(ctx context.Context, id string) error
}

type CreateEditionRequest struct {
	Name          string                `json:"name" validate:"required,max=128"`
	DisplayName   string                `json:"display_name" validate:"required,max=256"`
	Description   string                `json:"description"`
	MonthlyPrice  types.Money           `json:"monthly_price"`
	YearlyPrice   types.Money           `json:"yearly_price"`
	FeatureLimits edition.FeatureLimits `json:"feature_limits"`
}

type editionService struct {
	ServiceParams
}

func NewEditionService(params ServiceParams) EditionService {
	return &editionService{ServiceParams: params}
}

func (s *editionService) CreateEdition(ctx context.Context, req CreateEditionRequest) (*edition.Edition, error) {
	if err := validator.ValidateRequest(req); err != nil {
		return nil, err
	}

	ed, err := edition.New(
		types.GenerateUUIDWithPrefix(types.UUID_PREFIX_EDITION),
		req.Name,
		req.DisplayName,
		req.Description,
		req.MonthlyPrice,
		req.YearlyPrice,
		req.FeatureLimits,
		types.NewBaseModel(ctx, s.Clock.Now()),
	)
	if err != nil {
		return nil, err
	}
	if err := s.EditionRepo.Create(ctx, ed); err != nil {
		return nil, err
	}

	s.Logger.Infow("created edition", "edition_id", ed.ID, "name", ed.Name)
	return ed, nil
}

func (s *editionService) GetEdition(ctx context.Context, id string) (*edition.Edition, error) {
	return s.EditionRepo.Get(ctx, id)
}

func (s *editionService) ListEditions(ctx context.Context) ([]*edition.Edition, error) {
	return s.EditionRepo.List(ctx)
}

func (s *editionService) ListActiveEditions(ctx context.Context) ([]*edition.Edition, error) {
	return s.EditionRepo.ListActive(ctx)
}

func (s *editionService) UpdateEditionPricing(ctx context.Context, id string, monthly, yearly types.Money) (*edition.Edition, error) {
	ed, err := s.EditionRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ed.UpdatePricing(monthly, yearly); err != nil {
		return nil, err
	}
	ed.Touch(ctx, s.Clock.Now())
	if err := s.EditionRepo.Update(ctx, ed); err != nil {
		return nil, err
	}
	return ed, nil
}

func (s *editionService) UpdateEditionLimits(ctx context.Context, id string, limits edition.FeatureLimits) (*edition.Edition, error) {
	ed, err := s.EditionRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	ed.UpdateFeatureLimits(limits)
	ed.Touch(ctx, s.Clock.Now())
	if err := s.EditionRepo.Update(ctx, ed); err != nil {
		return nil, err
	}
	return ed, nil
}

func (s *editionService) ActivateEdition(ctx context.Context, id string) error {
	return s.setActivation(ctx, id, true)
}

func (s *editionService) DeactivateEdition(ctx context.Context, id string) error {
	return s.setActivation(ctx, id, false)
}

func (s *editionService) setActivation(ctx context.Context, id string, active bool) error {
	ed, err := s.EditionRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	now := s.Clock.Now()

	var ev *events.EditionActivated
	if active {
		ev = ed.Activate(now)
	} else {
		ev = ed.Deactivate(now)
	}
	ed.Touch(ctx, now)

	if err := s.EditionRepo.Update(ctx, ed); err != nil {
		return err
	}
	return s.EventPublisher.Publish(ctx, ev)
}

// DeleteEdition removes an edition from the catalog. An edition referenced by
// a live subscription cannot be deleted; deactivate it instead to block new
// signups while existing tenants run out their cycles.
func (s *editionService) DeleteEdition(ctx context.Context, id string) error {
	live, err := s.SubRepo.List(ctx, types.SpecificationFunc[*subscription.Subscription](func(sub *subscription.Subscription) bool {
		if sub.EditionID != id {
			return false
		}
		switch sub.Status {
		case types.SubscriptionStatusTrial, types.SubscriptionStatusActive, types.SubscriptionStatusSuspended:
			return true
		default:
			return false
		}
	}))
	if err != nil {
		return err
	}
	if len(live) > 0 {
		return ierr.NewError("edition has live subscriptions").
			WithHint("Deactivate the edition instead of deleting it").
			WithReportableDetails(map[string]any{
				"edition_id":         id,
				"live_subscriptions": len(live),
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	return s.EditionRepo.Delete(ctx, id)
}
