package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrinalabs/storefront-backend/internal/catalog"
	"github.com/vitrinalabs/storefront-backend/internal/filters"
	"github.com/vitrinalabs/storefront-backend/internal/pagination"
	"github.com/vitrinalabs/storefront-backend/pkg/cms"
	pkgerrors "github.com/vitrinalabs/storefront-backend/pkg/errors"
)

type fakeSearcher struct {
	gotCriteria filters.Criteria
	result      *catalog.Result
	err         error
}

func (f *fakeSearcher) Search(ctx context.Context, criteria filters.Criteria) (*catalog.Result, error) {
	f.gotCriteria = criteria
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func TestProductListDecodesQueryIntoCriteria(t *testing.T) {
	searcher := &fakeSearcher{result: &catalog.Result{
		Products: []cms.Product{{ID: 1, Name: "Taladro"}},
		Meta:     pagination.Meta{Page: 2, PageSize: 12, PageCount: 9, Total: 100},
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?search=taladro&brands=3,7&page=2", nil)
	res := httptest.NewRecorder()
	ProductList(searcher, testLogger())(res, req)

	require.Equal(t, http.StatusOK, res.Code, res.Body.String())
	assert.Equal(t, "taladro", searcher.gotCriteria.SearchTerm)
	assert.True(t, searcher.gotCriteria.Brands.Has(3))
	assert.True(t, searcher.gotCriteria.Brands.Has(7))
	assert.Equal(t, 2, searcher.gotCriteria.Page)

	var envelope struct {
		Data struct {
			Products   []cms.Product   `json:"products"`
			Pagination pagination.Meta `json:"pagination"`
			Window     []int           `json:"window"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Products, 1)
	assert.Equal(t, 100, envelope.Data.Pagination.Total)
	assert.Equal(t, []int{1, 2, 3, pagination.Ellipsis, 9}, envelope.Data.Window)
}

func TestProductListPropagatesFetchFailure(t *testing.T) {
	searcher := &fakeSearcher{err: pkgerrors.New(pkgerrors.CodeDependency, "cms down")}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	res := httptest.NewRecorder()
	ProductList(searcher, testLogger())(res, req)

	assert.Equal(t, http.StatusBadGateway, res.Code)
}

func TestProductListSupersededIsConflict(t *testing.T) {
	searcher := &fakeSearcher{err: catalog.ErrSuperseded}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	res := httptest.NewRecorder()
	ProductList(searcher, testLogger())(res, req)

	assert.Equal(t, http.StatusConflict, res.Code)
}
