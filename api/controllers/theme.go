package controllers

import (
	"net/http"

	"github.com/vitrinalabs/storefront-backend/api/middleware"
	"github.com/vitrinalabs/storefront-backend/api/responses"
	"github.com/vitrinalabs/storefront-backend/api/validators"
	"github.com/vitrinalabs/storefront-backend/internal/prefs"
	"github.com/vitrinalabs/storefront-backend/pkg/logger"
)

type themeRequest struct {
	Theme string `json:"theme" validate:"required,max=64"`
}

type themeView struct {
	Theme string `json:"theme"`
}

// ThemeFetch returns the session's theme preference.
func ThemeFetch(svc prefs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		theme, err := svc.Theme(ctx, middleware.SessionID(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, themeView{Theme: theme})
	}
}

// ThemeSet stores the session's theme preference.
func ThemeSet(svc prefs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body themeRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.SetTheme(ctx, middleware.SessionID(ctx), body.Theme); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, themeView{Theme: body.Theme})
	}
}

// ThemeClear drops the stored preference, falling back to the default.
func ThemeClear(svc prefs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := svc.ClearTheme(ctx, middleware.SessionID(ctx)); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, themeView{Theme: prefs.DefaultTheme})
	}
}
