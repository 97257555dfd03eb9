package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/vitrinalabs/storefront-backend/api/middleware"
	"github.com/vitrinalabs/storefront-backend/api/responses"
	"github.com/vitrinalabs/storefront-backend/api/validators"
	"github.com/vitrinalabs/storefront-backend/internal/cart"
	pkgerrors "github.com/vitrinalabs/storefront-backend/pkg/errors"
	"github.com/vitrinalabs/storefront-backend/pkg/logger"
)

type cartView struct {
	Items     []cart.Item     `json:"items"`
	ItemCount int             `json:"itemCount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type cartAddView struct {
	cartView
	Capped bool `json:"capped"`
}

func viewOf(c *cart.Cart) cartView {
	items := c.Items
	if items == nil {
		items = []cart.Item{}
	}
	return cartView{
		Items:     items,
		ItemCount: c.ItemCount(),
		Subtotal:  c.Subtotal(),
	}
}

type addItemRequest struct {
	ProductID   int     `json:"productId" validate:"required,gt=0"`
	Name        string  `json:"name" validate:"required"`
	Slug        string  `json:"slug"`
	Image       string  `json:"image"`
	UnitPrice   float64 `json:"unitPrice" validate:"min=0"`
	MaxQuantity int     `json:"maxQuantity" validate:"min=0"`
	Quantity    int     `json:"quantity" validate:"required,gt=0"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartFetch returns the session's cart with derived totals.
func CartFetch(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		current, err := svc.Get(ctx, middleware.SessionID(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, viewOf(current))
	}
}

// CartAddItem merges a product line into the cart, clamped at the product's
// stock cap.
func CartAddItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body addItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		item := cart.Item{
			ProductID:   body.ProductID,
			Name:        body.Name,
			Slug:        body.Slug,
			Image:       body.Image,
			UnitPrice:   decimal.NewFromFloat(body.UnitPrice),
			MaxQuantity: body.MaxQuantity,
		}
		result, err := svc.AddItem(ctx, middleware.SessionID(ctx), item, body.Quantity)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartAddView{cartView: viewOf(result.Cart), Capped: result.Capped})
	}
}

// CartUpdateQuantity replaces a line's quantity; zero removes the line.
func CartUpdateQuantity(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		productID, err := strconv.Atoi(chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "product id must be numeric"))
			return
		}

		var body updateQuantityRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		current, err := svc.UpdateQuantity(ctx, middleware.SessionID(ctx), productID, body.Quantity)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, viewOf(current))
	}
}

// CartRemoveItem deletes one line.
func CartRemoveItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		productID, err := strconv.Atoi(chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "product id must be numeric"))
			return
		}

		current, err := svc.RemoveItem(ctx, middleware.SessionID(ctx), productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, viewOf(current))
	}
}

// CartClear empties the session's cart.
func CartClear(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := svc.Clear(ctx, middleware.SessionID(ctx)); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, viewOf(&cart.Cart{}))
	}
}
