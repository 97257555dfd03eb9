package cart

import (
	"context"

	"github.com/vitrinalabs/storefront-backend/pkg/errors"
	"github.com/vitrinalabs/storefront-backend/pkg/logger"
)

// AddResult reports the cart after an add plus whether the product's stock
// cap truncated the requested quantity.
type AddResult struct {
	Cart   *Cart `json:"cart"`
	Capped bool  `json:"capped"`
}

// Service applies ledger mutations against a session's persisted cart.
type Service interface {
	Get(ctx context.Context, sessionID string) (*Cart, error)
	AddItem(ctx context.Context, sessionID string, item Item, quantity int) (*AddResult, error)
	UpdateQuantity(ctx context.Context, sessionID string, productID, quantity int) (*Cart, error)
	RemoveItem(ctx context.Context, sessionID string, productID int) (*Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

type service struct {
	storage Storage
	logg    *logger.Logger
}

func NewService(storage Storage, logg *logger.Logger) (Service, error) {
	if storage == nil {
		return nil, errors.New(errors.CodeInternal, "cart storage is required")
	}
	if logg == nil {
		return nil, errors.New(errors.CodeInternal, "logger is required")
	}
	return &service{storage: storage, logg: logg}, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (*Cart, error) {
	if sessionID == "" {
		return nil, errors.New(errors.CodeValidation, "session id is required")
	}
	return s.storage.Load(ctx, sessionID)
}

func (s *service) AddItem(ctx context.Context, sessionID string, item Item, quantity int) (*AddResult, error) {
	if sessionID == "" {
		return nil, errors.New(errors.CodeValidation, "session id is required")
	}
	if item.ProductID < 1 {
		return nil, errors.New(errors.CodeValidation, "product id is required")
	}

	cart, err := s.storage.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	capped, err := cart.add(item, quantity)
	if err != nil {
		return nil, err
	}
	s.persist(ctx, sessionID, cart)
	return &AddResult{Cart: cart, Capped: capped}, nil
}

func (s *service) UpdateQuantity(ctx context.Context, sessionID string, productID, quantity int) (*Cart, error) {
	if sessionID == "" {
		return nil, errors.New(errors.CodeValidation, "session id is required")
	}

	cart, err := s.storage.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := cart.setQuantity(productID, quantity); err != nil {
		return nil, err
	}
	s.persist(ctx, sessionID, cart)
	return cart, nil
}

func (s *service) RemoveItem(ctx context.Context, sessionID string, productID int) (*Cart, error) {
	if sessionID == "" {
		return nil, errors.New(errors.CodeValidation, "session id is required")
	}

	cart, err := s.storage.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !cart.remove(productID) {
		return nil, errors.New(errors.CodeNotFound, "product is not in the cart")
	}
	s.persist(ctx, sessionID, cart)
	return cart, nil
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return errors.New(errors.CodeValidation, "session id is required")
	}
	return s.storage.Delete(ctx, sessionID)
}

// persist writes the cart back best-effort: a storage outage must not void a
// mutation the caller already sees applied.
func (s *service) persist(ctx context.Context, sessionID string, cart *Cart) {
	if err := s.storage.Save(ctx, sessionID, cart); err != nil {
		s.logg.Warn(s.logg.WithSessionID(ctx, sessionID), "cart save failed: "+err.Error())
	}
}
