package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrinalabs/storefront-backend/api/middleware"
	"github.com/vitrinalabs/storefront-backend/internal/cart"
	"github.com/vitrinalabs/storefront-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})
}

func newCartService(t *testing.T) cart.Service {
	t.Helper()
	svc, err := cart.NewService(cart.NewMemoryStorage(), testLogger())
	require.NoError(t, err)
	return svc
}

func sessionRequest(method, target string, body []byte) *http.Request {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	return req.WithContext(middleware.WithSessionID(req.Context(), "sess-test"))
}

func decodeData(t *testing.T, res *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestCartAddItemAndFetch(t *testing.T) {
	svc := newCartService(t)

	body := []byte(`{"productId":101,"name":"Taladro","unitPrice":45000,"maxQuantity":5,"quantity":2}`)
	res := httptest.NewRecorder()
	CartAddItem(svc, testLogger())(res, sessionRequest(http.MethodPost, "/api/v1/cart/items", body))

	require.Equal(t, http.StatusOK, res.Code, res.Body.String())
	data := decodeData(t, res)
	assert.Equal(t, false, data["capped"])
	assert.Equal(t, float64(2), data["itemCount"])

	res = httptest.NewRecorder()
	CartFetch(svc, testLogger())(res, sessionRequest(http.MethodGet, "/api/v1/cart", nil))
	require.Equal(t, http.StatusOK, res.Code)
	data = decodeData(t, res)
	assert.Equal(t, float64(2), data["itemCount"])
}

func TestCartAddItemSignalsCap(t *testing.T) {
	svc := newCartService(t)

	body := []byte(`{"productId":1,"name":"x","unitPrice":10,"maxQuantity":5,"quantity":3}`)
	res := httptest.NewRecorder()
	CartAddItem(svc, testLogger())(res, sessionRequest(http.MethodPost, "/api/v1/cart/items", body))
	require.Equal(t, http.StatusOK, res.Code)

	body = []byte(`{"productId":1,"name":"x","unitPrice":10,"maxQuantity":5,"quantity":4}`)
	res = httptest.NewRecorder()
	CartAddItem(svc, testLogger())(res, sessionRequest(http.MethodPost, "/api/v1/cart/items", body))
	require.Equal(t, http.StatusOK, res.Code)

	data := decodeData(t, res)
	assert.Equal(t, true, data["capped"])
	assert.Equal(t, float64(5), data["itemCount"], "quantity clamps at the cap")
}

func TestCartAddItemRejectsInvalidBody(t *testing.T) {
	svc := newCartService(t)

	res := httptest.NewRecorder()
	CartAddItem(svc, testLogger())(res, sessionRequest(http.MethodPost, "/api/v1/cart/items", []byte(`{"quantity":0}`)))
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestCartUpdateQuantityOverCapConflicts(t *testing.T) {
	svc := newCartService(t)

	body := []byte(`{"productId":1,"name":"x","unitPrice":10,"maxQuantity":3,"quantity":1}`)
	res := httptest.NewRecorder()
	CartAddItem(svc, testLogger())(res, sessionRequest(http.MethodPost, "/api/v1/cart/items", body))
	require.Equal(t, http.StatusOK, res.Code)

	router := chi.NewRouter()
	router.Patch("/cart/items/{productID}", CartUpdateQuantity(svc, testLogger()))

	req := sessionRequest(http.MethodPatch, "/cart/items/1", []byte(`{"quantity":9}`))
	res = httptest.NewRecorder()
	router.ServeHTTP(res, req)
	assert.Equal(t, http.StatusConflict, res.Code)
}

func TestCartRemoveMissingItemIs404(t *testing.T) {
	svc := newCartService(t)

	router := chi.NewRouter()
	router.Delete("/cart/items/{productID}", CartRemoveItem(svc, testLogger()))

	res := httptest.NewRecorder()
	router.ServeHTTP(res, sessionRequest(http.MethodDelete, "/cart/items/77", nil))
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestCartClear(t *testing.T) {
	svc := newCartService(t)

	body := []byte(`{"productId":1,"name":"x","unitPrice":10,"maxQuantity":3,"quantity":1}`)
	res := httptest.NewRecorder()
	CartAddItem(svc, testLogger())(res, sessionRequest(http.MethodPost, "/api/v1/cart/items", body))
	require.Equal(t, http.StatusOK, res.Code)

	res = httptest.NewRecorder()
	CartClear(svc, testLogger())(res, sessionRequest(http.MethodDelete, "/api/v1/cart", nil))
	require.Equal(t, http.StatusOK, res.Code)

	saved, err := svc.Get(context.Background(), "sess-test")
	require.NoError(t, err)
	assert.True(t, saved.Empty())
}
