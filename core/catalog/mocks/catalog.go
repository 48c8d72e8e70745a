package mocks

import (
	"context"

	"catalog-sync/core/reconcile"

	"github.com/stretchr/testify/mock"
)

// Catalog is a mock implementation of reconcile.Catalog
type Catalog struct {
	mock.Mock
}

func (m *Catalog) ListProductsPage(ctx context.Context, page, pageSize int) ([]reconcile.Product, error) {
	args := m.Called(ctx, page, pageSize)
	if products, ok := args.Get(0).([]reconcile.Product); ok {
		return products, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Catalog) ListVariations(ctx context.Context, productID int64, pageSize int) ([]reconcile.Variation, error) {
	args := m.Called(ctx, productID, pageSize)
	if variations, ok := args.Get(0).([]reconcile.Variation); ok {
		return variations, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Catalog) UpdateVariationStock(ctx context.Context, productID, variationID int64, quantity int) error {
	args := m.Called(ctx, productID, variationID, quantity)
	return args.Error(0)
}

func (m *Catalog) UpdateProductVisibility(ctx context.Context, productID int64, visibility reconcile.Visibility) error {
	args := m.Called(ctx, productID, visibility)
	return args.Error(0)
}

func (m *Catalog) BatchUpdateSimpleProducts(ctx context.Context, updates []reconcile.SimpleUpdate) error {
	args := m.Called(ctx, updates)
	return args.Error(0)
}
