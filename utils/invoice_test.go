package utils

import (
	"testing"

	"GautamiHMS/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		amount   string
		expected string
	}{
		{"0", "Zero Rupees Only"},
		{"7", "Seven Rupees Only"},
		{"18", "Eighteen Rupees Only"},
		{"45", "Forty Five Rupees Only"},
		{"100", "One Hundred Rupees Only"},
		{"512", "Five Hundred Twelve Rupees Only"},
		{"2000", "Two Thousand Rupees Only"},
		{"123456", "One Lakh Twenty Three Thousand Four Hundred Fifty Six Rupees Only"},
		{"10000000", "One Crore Rupees Only"},
		{"1500.50", "One Thousand Five Hundred Rupees and Fifty Paise Only"},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			amount, err := decimal.NewFromString(tt.amount)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, AmountInWords(amount))
		})
	}
}

func TestInvoiceFilename(t *testing.T) {
	assert.Equal(t, "Bill_Ramesh_Kumar_27082026.pdf", InvoiceFilename("Ramesh Kumar", "2026-08-27", ""))
	assert.Equal(t, "Bill_Ramesh_Kumar_27082026_BL-000003.pdf", InvoiceFilename("Ramesh Kumar", "2026-08-27", "BL-000003"))
	// An unparseable date key is carried through as-is.
	assert.Equal(t, "Bill_X_someday.pdf", InvoiceFilename(" X ", "someday", ""))
}

func TestBuildInvoiceTotals(t *testing.T) {
	admission := &models.Admission{
		ID:          "adm-1",
		PatientID:   "UH-000042",
		PatientName: "Ramesh Kumar",
		DateKey:     "2026-08-27",
		WardID:      "general",
	}
	billing := &models.Billing{ID: "bill-1", BillNumber: "BL-000003", TotalDeposit: 2000}
	lines := []InvoiceLine{
		{Description: "Bed charges", Quantity: 3, UnitPrice: decimal.NewFromInt(1200)},
		{Description: "Doctor visit", Quantity: 2, UnitPrice: decimal.NewFromInt(500)},
	}

	inv := BuildInvoice(admission, billing, lines)
	assert.Equal(t, "BL-000003", inv.BillNumber)
	assert.True(t, inv.GrossTotal.Equal(decimal.NewFromInt(4600)), "gross total: %s", inv.GrossTotal)
	assert.True(t, inv.TotalDeposit.Equal(decimal.NewFromInt(2000)))
	assert.True(t, inv.BalanceDue.Equal(decimal.NewFromInt(2600)))
	assert.Equal(t, "Four Thousand Six Hundred Rupees Only", inv.AmountInWords)
	assert.True(t, inv.Lines[0].Amount.Equal(decimal.NewFromInt(3600)))
}

func TestBuildInvoiceDepositExceedsCharges(t *testing.T) {
	admission := &models.Admission{ID: "adm-1", PatientName: "Ramesh Kumar", DateKey: "2026-08-27"}
	billing := &models.Billing{ID: "bill-1", TotalDeposit: 5000}
	lines := []InvoiceLine{{Description: "Bed charges", Quantity: 1, UnitPrice: decimal.NewFromInt(1200)}}

	inv := BuildInvoice(admission, billing, lines)
	assert.True(t, inv.BalanceDue.IsZero())
}
