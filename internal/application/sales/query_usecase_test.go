package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pdv-api/internal/application/dto"
	"github.com/jhoicas/pdv-api/internal/domain"
)

func TestPreview_NoMutaYAvisaFaltantes(t *testing.T) {
	f := newFixture(t)
	f.addIngredient(t, "harina", "Harina", "500", "2")
	f.addIndividual(t, "pan", "Pan", "1500", "400", req("harina", "Harina", "200"))

	out, err := f.query.Preview(context.Background(), dto.PreviewRequest{
		Items:         []dto.SaleLineRequest{lineOf("pan", 3)},
		PaymentMethod: "debit",
	})
	require.NoError(t, err)
	assertDecimal(t, "4500", out.SellingResume.Subtotal)
	assertDecimal(t, "90", out.SellingResume.Fees)
	assertDecimal(t, "4590", out.SellingResume.TotalValue)
	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0], "máximo 2")

	assertDecimal(t, "500", f.stockOf(t, "harina"))
	assert.Equal(t, 0, f.salesCount(t))
}

func TestPreview_SinAvisosCuandoAlcanza(t *testing.T) {
	f := newFixture(t)
	f.addBatch(t, "brownie", "Brownie", 10, 4, "800", "300")

	out, err := f.query.Preview(context.Background(), dto.PreviewRequest{
		Items:         []dto.SaleLineRequest{lineOf("brownie", 2)},
		PaymentMethod: "cash",
		Discount:      dto.DiscountRequest{Type: "fixed", Value: d("5000")},
	})
	require.NoError(t, err)
	assert.Empty(t, out.Warnings)
	assertDecimal(t, "1600", out.SellingResume.DiscountAmount)
	assertDecimal(t, "0", out.SellingResume.TotalValue)
	assert.Equal(t, 4, f.producedOf(t, "brownie"))
}

func TestPreview_Errores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.query.Preview(ctx, dto.PreviewRequest{PaymentMethod: "cash"})
	assert.ErrorIs(t, err, domain.ErrEmptyCart)

	_, err = f.query.Preview(ctx, dto.PreviewRequest{Items: []dto.SaleLineRequest{lineOf("nada", 1)}, PaymentMethod: "cash"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQuery_GetByIDYList(t *testing.T) {
	f := newFixture(t)
	f.addBatch(t, "brownie", "Brownie", 10, 4, "800", "300")
	ctx := context.Background()

	confirmed, err := f.confirm.Confirm(ctx, cashSale(lineOf("brownie", 1)))
	require.NoError(t, err)

	got, err := f.query.GetByID(ctx, confirmed.Sale.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, confirmed.Sale.ID, got.ID)

	missing, err := f.query.GetByID(ctx, "no-existe")
	require.NoError(t, err)
	assert.Nil(t, missing)

	list, err := f.query.List(ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)

	future := time.Now().Add(24 * time.Hour)
	list, err = f.query.List(ctx, &future, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, list.Total)
	assert.NotNil(t, list.Items)
}
