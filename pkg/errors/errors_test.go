package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCarriesCodeAndMessage(t *testing.T) {
	err := New(CodeValidation, "price range inverted")
	assert.Equal(t, CodeValidation, err.Code())
	assert.Equal(t, "price range inverted", err.Message())
	assert.Equal(t, "VALIDATION_ERROR: price range inverted", err.Error())
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(CodeDependency, cause, "fetch catalog")

	require.ErrorIs(t, err, cause)
	assert.Equal(t, CodeDependency, err.Code())
}

func TestAsUnwrapsNestedTypedError(t *testing.T) {
	inner := New(CodeNotFound, "product missing")
	outer := fmt.Errorf("load detail: %w", inner)

	typed := As(outer)
	require.NotNil(t, typed)
	assert.Equal(t, CodeNotFound, typed.Code())
}

func TestAsReturnsNilForPlainError(t *testing.T) {
	assert.Nil(t, As(fmt.Errorf("plain")))
	assert.Nil(t, As(nil))
}

func TestIsMatchesCode(t *testing.T) {
	err := New(CodeQuantity, "over cap")
	assert.True(t, Is(err, CodeQuantity))
	assert.False(t, Is(err, CodeConflict))
}

func TestMetadataForUnknownCodeFallsBack(t *testing.T) {
	meta := MetadataFor(Code("WHATEVER"))
	assert.Equal(t, http.StatusInternalServerError, meta.HTTPStatus)
}

func TestDumpCollectsChain(t *testing.T) {
	err := Wrap(CodeDependency, fmt.Errorf("tcp reset"), "price bounds fetch")
	dump := Dump(err)

	assert.Equal(t, CodeDependency, dump.Code)
	require.Len(t, dump.Chain, 2)
}
