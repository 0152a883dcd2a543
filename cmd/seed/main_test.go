package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

const sampleCSV = "nombre;unidad;cantidad_maxima;cantidad_comprada;precio_compra\n" +
	"Harina;kg;10;2;5000\n" +
	"Azúcar;kg;5;0,5;1500\n" +
	"Huevos;un;60;;0\n"

func TestParseIngredients_NormalizaYCalculaPrecioUnitario(t *testing.T) {
	rows, err := parseIngredients(strings.NewReader(sampleCSV), time.Now())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	flour := rows[0]
	assert.Equal(t, "g", string(flour.ingredient.Unit))
	assert.True(t, flour.ingredient.MaxQuantity.Equal(decimal.NewFromInt(10000)))
	require.NotNil(t, flour.batch)
	assert.True(t, flour.batch.OriginalQuantity.Equal(decimal.NewFromInt(2000)))
	assert.True(t, flour.batch.UnitPrice.Equal(decimal.RequireFromString("2.5")))

	sugar := rows[1]
	require.NotNil(t, sugar.batch)
	assert.True(t, sugar.batch.OriginalQuantity.Equal(decimal.NewFromInt(500)))

	assert.Nil(t, rows[2].batch, "sin cantidad comprada no hay lote")
}

func TestParseIngredients_Latin1(t *testing.T) {
	encoded, err := charmap.ISO8859_1.NewEncoder().String(sampleCSV)
	require.NoError(t, err)

	rows, err := parseIngredients(transform.NewReader(strings.NewReader(encoded), charmap.ISO8859_1.NewDecoder()), time.Now())
	require.NoError(t, err)
	assert.Equal(t, "Azúcar", rows[1].ingredient.Name)
}

func TestParseIngredients_Errores(t *testing.T) {
	header := "nombre;unidad;cantidad_maxima;cantidad_comprada;precio_compra\n"
	cases := map[string]string{
		"unidad desconocida": header + "Sal;lb;1;1;1\n",
		"repetido":           header + "Sal;g;1;1;1\nsal;g;1;1;1\n",
		"negativo":           header + "Sal;g;-1;1;1\n",
		"columnas":           header + "Sal;g;1\n",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseIngredients(strings.NewReader(input), time.Now())
			assert.Error(t, err)
		})
	}
}

func TestWriteSQL_IdsDeterministas(t *testing.T) {
	rows1, err := parseIngredients(strings.NewReader(sampleCSV), time.Now())
	require.NoError(t, err)
	rows2, err := parseIngredients(strings.NewReader(sampleCSV), time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, rows1[0].ingredient.ID, rows2[0].ingredient.ID)

	var buf bytes.Buffer
	require.NoError(t, writeSQL(&buf, rows1))
	sql := buf.String()
	assert.Equal(t, 3, strings.Count(sql, "INSERT INTO ingredients"))
	assert.Equal(t, 2, strings.Count(sql, "INSERT INTO purchase_batches"))
	assert.Contains(t, sql, "'Azúcar'")
}

func TestEscapeSQL(t *testing.T) {
	assert.Equal(t, "D''Onofrio", escapeSQL("D'Onofrio"))
}
