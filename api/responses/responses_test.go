package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/vitrinalabs/storefront-backend/pkg/errors"
	"github.com/vitrinalabs/storefront-backend/pkg/types"
)

func TestWriteSuccessWrapsData(t *testing.T) {
	res := httptest.NewRecorder()
	WriteSuccess(res, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "application/json", res.Header().Get("Content-Type"))

	var envelope types.SuccessEnvelope
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &envelope))
	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ok", data["status"])
}

func TestWriteErrorValidationKeepsMessage(t *testing.T) {
	res := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	WriteError(context.Background(), nil, res, err)

	assert.Equal(t, http.StatusBadRequest, res.Code)

	var envelope types.ErrorEnvelope
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &envelope))
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
	assert.Equal(t, "quantity must be at least 1", envelope.Error.Message)
}

func TestWriteErrorInternalHidesDetail(t *testing.T) {
	res := httptest.NewRecorder()
	err := pkgerrors.Wrap(pkgerrors.CodeInternal, errors.New("pool exhausted"), "db connection leaked")
	WriteError(context.Background(), nil, res, err)

	assert.Equal(t, http.StatusInternalServerError, res.Code)

	var envelope types.ErrorEnvelope
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &envelope))
	assert.Equal(t, "internal server error", envelope.Error.Message)
	assert.NotContains(t, res.Body.String(), "pool exhausted")
}

func TestWriteErrorQuantityCarriesDetails(t *testing.T) {
	res := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeQuantity, "quantity exceeds the product maximum").
		WithDetails(map[string]int{"maxQuantity": 5})
	WriteError(context.Background(), nil, res, err)

	assert.Equal(t, http.StatusConflict, res.Code)
	assert.Contains(t, res.Body.String(), `"maxQuantity":5`)
}

func TestWriteErrorUntypedBecomesInternal(t *testing.T) {
	res := httptest.NewRecorder()
	WriteError(context.Background(), nil, res, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, res.Code)

	var envelope types.ErrorEnvelope
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &envelope))
	assert.Equal(t, "INTERNAL_ERROR", envelope.Error.Code)
}
