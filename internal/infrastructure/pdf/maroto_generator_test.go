package pdf

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/repuestos-api/internal/application/ports"
)

func TestMoney_FormatoEspanol(t *testing.T) {
	g := NewMarotoGenerator("Repuestos")
	assert.Equal(t, "$ 7,50", g.money("$", decimal.RequireFromString("7.499")))
	assert.Equal(t, "Bs 25,00", g.money("Bs", decimal.NewFromInt(25)))
}

func TestGenerate_DevuelvePDF(t *testing.T) {
	g := NewMarotoGenerator("Repuestos")
	out, err := g.Generate(context.Background(), ports.DocumentData{
		Title:          "COTIZACIÓN",
		Number:         "1000",
		Date:           "2024-05-10",
		Status:         "pendiente",
		Client:         "Transportes Lara",
		PaymentMethod:  "Contado",
		CurrencySymbol: "$",
		Lines: []ports.DocumentLine{
			{PartNumber: "ABC-123", Name: "Filtro", Warehouse: "Almacén Principal", Quantity: 2,
				Price: decimal.NewFromInt(10), Total: decimal.NewFromInt(20)},
		},
		Total: decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	require.True(t, len(out) > 4)
	assert.Equal(t, "%PDF", string(out[:4]))
}
