package services

import (
	"testing"

	"github.com/Govind-619/CocoMart/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }

func TestCatalog_CreateDefaultsToAvailable(t *testing.T) {
	f := newFixture(t)

	item, err := f.svc.Catalog.Create(f.ctx, CatalogItemInput{
		Variety: strPtr("  Mature "),
		Size:    strPtr("Small"),
		Rate:    floatPtr(7.499),
	})
	require.NoError(t, err)
	assert.True(t, item.Available)
	assert.Equal(t, "Mature", item.Variety)
	assert.Equal(t, 7.5, item.Rate)

	hidden, err := f.svc.Catalog.Create(f.ctx, CatalogItemInput{
		Variety:   strPtr("Golden"),
		Size:      strPtr("Medium"),
		Rate:      floatPtr(12),
		Available: boolPtr(false),
	})
	require.NoError(t, err)
	assert.False(t, hidden.Available)

	all, err := f.svc.Catalog.List(f.ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	available, err := f.svc.Catalog.List(f.ctx, true)
	require.NoError(t, err)
	assert.Len(t, available, 2)
	for _, it := range available {
		assert.True(t, it.Available)
	}
}

func TestCatalog_CreateValidation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		in   CatalogItemInput
	}{
		{"missing variety", CatalogItemInput{Size: strPtr("Large"), Rate: floatPtr(5)}},
		{"blank size", CatalogItemInput{Variety: strPtr("Tender"), Size: strPtr(" "), Rate: floatPtr(5)}},
		{"zero rate", CatalogItemInput{Variety: strPtr("Tender"), Size: strPtr("Large"), Rate: floatPtr(0)}},
		{"negative rate", CatalogItemInput{Variety: strPtr("Tender"), Size: strPtr("Large"), Rate: floatPtr(-3)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Catalog.Create(f.ctx, tt.in)
			assert.True(t, utils.IsKind(err, utils.KindInvalidInput), "got %v", err)
		})
	}
}

func TestCatalog_UpdateAndDelete(t *testing.T) {
	f := newFixture(t)

	item, err := f.svc.Catalog.Update(f.ctx, f.coconut.ID, CatalogItemInput{Rate: floatPtr(11), Available: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, 11.0, item.Rate)
	assert.False(t, item.Available)
	assert.Equal(t, "Tender", item.Variety)

	_, err = f.svc.Catalog.Update(f.ctx, f.coconut.ID, CatalogItemInput{Rate: floatPtr(0)})
	assert.True(t, utils.IsKind(err, utils.KindInvalidInput))

	_, err = f.svc.Catalog.Update(f.ctx, 9999, CatalogItemInput{Rate: floatPtr(3)})
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	require.NoError(t, f.svc.Catalog.Delete(f.ctx, f.coconut.ID))
	assert.True(t, utils.IsKind(f.svc.Catalog.Delete(f.ctx, f.coconut.ID), utils.KindNotFound))

	_, err = f.svc.Catalog.Get(f.ctx, f.coconut.ID)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}
