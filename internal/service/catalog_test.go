package service

import (
	"context"
	"testing"

	"github.com/and161185/nutrilog/internal/errs"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"
)

func TestCustomFoodService_CreateUpdate(t *testing.T) {
	t.Parallel()
	repo := &fakeCustomFoods{}
	s := NewCustomFoodService(repo)
	ctx := context.Background()
	uid := uuid.Must(uuid.NewV4())

	in := CustomFoodInput{
		Barcode: sptr("  "), Name: " Granola ", Brand: sptr(" Home "), ServingSizeG: fptr(45),
		CaloriesPer100g: fptr(450), FatPer100g: fptr(18), SaturatedFatPer100g: fptr(3),
		CarbsPer100g: fptr(60), SugarsPer100g: fptr(20), FiberPer100g: fptr(8),
		ProteinPer100g: fptr(10), SaltPer100g: fptr(0.1),
	}
	f, err := s.Create(ctx, uid, in)
	require.NoError(t, err)
	require.Nil(t, f.Barcode)
	require.Equal(t, "Granola", f.Name)
	require.Equal(t, "Home", *f.Brand)
	require.Equal(t, 450.0, f.CaloriesPer100g)

	in.FatPer100g = fptr(101)
	in.Barcode = sptr("12ab")
	_, err = s.Update(ctx, uid, f.ID, in)
	v, ok := errs.AsValidation(err)
	require.True(t, ok)
	require.Len(t, v.Details, 2)

	in.FatPer100g = fptr(20)
	in.Barcode = sptr("4006381333931")
	f, err = s.Update(ctx, uid, f.ID, in)
	require.NoError(t, err)
	require.Equal(t, "4006381333931", *f.Barcode)

	_, err = s.Update(ctx, uid, 42, in)
	require.ErrorIs(t, err, errs.ErrNotFound)
}
