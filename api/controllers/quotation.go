package controllers

import (
	"net/http"

	"github.com/vitrinalabs/storefront-backend/api/middleware"
	"github.com/vitrinalabs/storefront-backend/api/responses"
	"github.com/vitrinalabs/storefront-backend/api/validators"
	"github.com/vitrinalabs/storefront-backend/internal/quotation"
	"github.com/vitrinalabs/storefront-backend/pkg/logger"
)

type quotationPlaceRequest struct {
	PlaceID int `json:"placeId" validate:"required,gt=0"`
}

type quotationCategoriesRequest struct {
	CategoryIDs []int `json:"categoryIds" validate:"required,min=1"`
}

type quotationStepRequest struct {
	Step int `json:"step" validate:"required,min=1"`
}

type quotationCompleteView struct {
	Draft         *quotation.Draft `json:"draft"`
	RedirectQuery string           `json:"redirectQuery"`
}

// QuotationFetch returns the session's draft wizard state.
func QuotationFetch(svc quotation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		draft, err := svc.Draft(ctx, middleware.SessionID(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, draft)
	}
}

// QuotationSetPlace records the place chosen in the first step.
func QuotationSetPlace(svc quotation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body quotationPlaceRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		draft, err := svc.Update(ctx, middleware.SessionID(ctx), func(d *quotation.Draft) {
			d.SetPlace(body.PlaceID)
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, draft)
	}
}

// QuotationSetCategories records the categories chosen in the second step.
func QuotationSetCategories(svc quotation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body quotationCategoriesRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		draft, err := svc.Update(ctx, middleware.SessionID(ctx), func(d *quotation.Draft) {
			d.SetCategories(body.CategoryIDs)
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, draft)
	}
}

// QuotationNext advances the wizard one step.
func QuotationNext(svc quotation.Service, logg *logger.Logger) http.HandlerFunc {
	return quotationStep(svc, logg, func(d *quotation.Draft) { d.Next() })
}

// QuotationPrevious moves the wizard one step back.
func QuotationPrevious(svc quotation.Service, logg *logger.Logger) http.HandlerFunc {
	return quotationStep(svc, logg, func(d *quotation.Draft) { d.Previous() })
}

func quotationStep(svc quotation.Service, logg *logger.Logger, move func(*quotation.Draft)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		draft, err := svc.Update(ctx, middleware.SessionID(ctx), move)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, draft)
	}
}

// QuotationGoToStep jumps directly to a wizard step.
func QuotationGoToStep(svc quotation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body quotationStepRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		draft, err := svc.Update(ctx, middleware.SessionID(ctx), func(d *quotation.Draft) {
			d.GoToStep(body.Step)
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, draft)
	}
}

// QuotationComplete finalizes the wizard and hands the chosen facets to the
// catalog: the response carries the query string the client navigates with,
// and the same criteria are what the catalog decodes on arrival.
func QuotationComplete(svc quotation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		draft, err := svc.Complete(ctx, middleware.SessionID(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, quotationCompleteView{
			Draft:         draft,
			RedirectQuery: draft.Handoff().Encode(),
		})
	}
}

// QuotationReset discards the draft.
func QuotationReset(svc quotation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := svc.Reset(ctx, middleware.SessionID(ctx)); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, quotation.NewDraft())
	}
}
