package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pdv-api/internal/domain/entity"
	"github.com/jhoicas/pdv-api/internal/domain/inventory"
)

func TestMaxProducibleBatches(t *testing.T) {
	stock := inventory.NewStock([]*entity.Ingredient{
		ingredient("flour", "Harina", "2500", "0.01"),
		ingredient("cocoa", "Cacao", "900", "0.05"),
	})
	p := batchProduct(10, 0, "5", "2", req("flour", "Harina", "1000"), req("cocoa", "Cacao", "300"))

	assert.Equal(t, 2, inventory.MaxProducibleBatches(p, stock))
	assert.Equal(t, 0, inventory.MaxProducibleBatches(individualProduct("1", "1", req("flour", "Harina", "1")), stock),
		"un producto individual no se produce por lote")
}

func TestValidateBatchProduction(t *testing.T) {
	stock := inventory.NewStock([]*entity.Ingredient{ingredient("flour", "Harina", "2500", "0.01")})
	p := batchProduct(10, 0, "5", "2", req("flour", "Harina", "1000"))

	assert.True(t, inventory.ValidateBatchProduction(p, 2, stock).IsValid)

	res := inventory.ValidateBatchProduction(p, 3, stock)
	assert.False(t, res.IsValid)
	assert.Equal(t, []string{"Harina"}, res.MissingIngredients)

	assert.False(t, inventory.ValidateBatchProduction(p, 0, stock).IsValid)
	assert.False(t, inventory.ValidateBatchProduction(individualProduct("1", "1"), 1, stock).IsValid)
}

func TestProduceBatch(t *testing.T) {
	stock := inventory.NewStock([]*entity.Ingredient{
		ingredient("flour", "Harina", "2500", "0.01"),
		ingredient("cocoa", "Cacao", "900", "0.05"),
	})
	p := batchProduct(10, 3, "5", "2", req("flour", "Harina", "1000"), req("cocoa", "Cacao", "300"))

	out, res := inventory.ProduceBatch(p, 2, stock)
	require.True(t, res.IsValid)
	assert.Equal(t, 20, out.ProducedIncrement)
	require.Len(t, out.Consumptions, 2)
	assertDecimal(t, "2000", out.Consumptions[0].Quantity)
	assertDecimal(t, "600", out.Consumptions[1].Quantity)

	empty, res := inventory.ProduceBatch(p, 5, stock)
	assert.False(t, res.IsValid)
	assert.Empty(t, empty.Consumptions)
	assert.Zero(t, empty.ProducedIncrement)
}

func TestUpdateProducedQuantity(t *testing.T) {
	p := batchProduct(10, 3, "5", "2")
	at := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	out := inventory.UpdateProducedQuantity(p, 20, at)
	assert.Equal(t, 23, out.Production.ProducedQuantity)
	require.NotNil(t, out.Production.LastProductionDate)
	assert.Equal(t, at, *out.Production.LastProductionDate)
	assert.Equal(t, 3, p.Production.ProducedQuantity)
	assert.Nil(t, p.Production.LastProductionDate)
}
