package quotation

import (
	"context"
	"encoding/json"
	"time"

	"github.com/vitrinalabs/storefront-backend/pkg/errors"
	"github.com/vitrinalabs/storefront-backend/pkg/redis"
)

// draftStore is the slice of the Redis wrapper the service needs.
type draftStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	QuotationKey(sessionID string) string
}

// Service persists quotation drafts for the retention window and applies
// wizard mutations against them.
type Service interface {
	Draft(ctx context.Context, sessionID string) (*Draft, error)
	Update(ctx context.Context, sessionID string, mutate func(*Draft)) (*Draft, error)
	Complete(ctx context.Context, sessionID string) (*Draft, error)
	Reset(ctx context.Context, sessionID string) error
}

type service struct {
	store draftStore
	ttl   time.Duration
}

func NewService(store draftStore, draftTTL time.Duration) (Service, error) {
	if store == nil {
		return nil, errors.New(errors.CodeInternal, "draft store is required")
	}
	return &service{store: store, ttl: draftTTL}, nil
}

// Draft returns the session's stored draft, or a fresh wizard when none
// exists or the retention window has expired it.
func (s *service) Draft(ctx context.Context, sessionID string) (*Draft, error) {
	if sessionID == "" {
		return nil, errors.New(errors.CodeValidation, "session id is required")
	}
	raw, err := s.store.Get(ctx, s.store.QuotationKey(sessionID))
	if err == redis.Nil {
		return NewDraft(), nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "loading quotation draft")
	}
	var draft Draft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return NewDraft(), nil
	}
	if draft.CurrentStep < 1 || draft.CurrentStep > TotalSteps {
		draft.CurrentStep = StepPlace
	}
	return &draft, nil
}

// Update loads the draft, applies the mutation and persists the result. The
// retention TTL restarts on every write.
func (s *service) Update(ctx context.Context, sessionID string, mutate func(*Draft)) (*Draft, error) {
	draft, err := s.Draft(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	mutate(draft)
	if err := s.save(ctx, sessionID, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Complete finalizes the wizard. Both steps must have validated input.
func (s *service) Complete(ctx context.Context, sessionID string) (*Draft, error) {
	draft, err := s.Draft(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	for step := 1; step <= TotalSteps; step++ {
		if !draft.StepIsValid(step) {
			return nil, errors.New(errors.CodeValidation, "quotation steps are incomplete").
				WithDetails(map[string]int{"step": step})
		}
	}
	draft.Complete()
	if err := s.save(ctx, sessionID, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Reset discards the stored draft. Clearing all catalog filters routes here
// as well.
func (s *service) Reset(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return errors.New(errors.CodeValidation, "session id is required")
	}
	if err := s.store.Del(ctx, s.store.QuotationKey(sessionID)); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "resetting quotation draft")
	}
	return nil
}

func (s *service) save(ctx context.Context, sessionID string, draft *Draft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "encoding quotation draft")
	}
	if err := s.store.Set(ctx, s.store.QuotationKey(sessionID), payload, s.ttl); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "saving quotation draft")
	}
	return nil
}
