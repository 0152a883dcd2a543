package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pdv-api/internal/domain/entity"
)

func TestCart_Operaciones(t *testing.T) {
	var c entity.Cart
	assert.True(t, c.IsEmpty())

	c.Set("a", 2)
	c.Set("b", 1)
	c.Set("a", 5)
	assert.Equal(t, 5, c.QuantityOf("a"))
	assert.Len(t, c.Lines, 2)

	c.Set("b", 0)
	assert.Equal(t, 0, c.QuantityOf("b"))
	assert.False(t, c.Remove("b"))
	assert.True(t, c.Remove("a"))
	assert.True(t, c.IsEmpty())

	c.Set("x", 1)
	c.Clear()
	assert.True(t, c.IsEmpty())
}
