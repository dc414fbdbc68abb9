package pdf_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hospital-inventory/internal/application/dto"
	"github.com/jhoicas/hospital-inventory/internal/infrastructure/pdf"
)

func TestGenerateLowStockPDF(t *testing.T) {
	dept := "Urgencias"
	items := []dto.ReplenishmentSuggestionDTO{
		{ItemID: 1, ItemName: "Guantes", Unit: "caja", DeptName: &dept, CurrentQty: 0, MinQuantity: 10, Shortage: 10, IdealQty: 15, SuggestedOrderQty: 15, Priority: 1},
		{ItemID: 2, ItemName: "Jeringas", Unit: "pieza", CurrentQty: 3, MinQuantity: 5, Shortage: 2, IdealQty: 8, SuggestedOrderQty: 5, Priority: 2},
	}

	data, err := pdf.NewMarotoPDFGenerator("hospital-inventory").GenerateLowStockPDF(context.Background(), items, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestGenerateLowStockPDF_SinItems(t *testing.T) {
	data, err := pdf.NewMarotoPDFGenerator("hospital-inventory").GenerateLowStockPDF(context.Background(), nil, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
