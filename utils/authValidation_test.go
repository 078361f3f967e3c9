package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"GautamiHMS/models"
)

func TestValidateEditFields(t *testing.T) {
	tests := []struct {
		name        string
		paymentMode string
		deposit     float64
		wantErr     bool
	}{
		{"cash deposit", models.PaymentCash, 2000, false},
		{"online deposit", models.PaymentOnline, 500, false},
		{"no deposit, no mode", "", 0, false},
		{"unrecognised mode", "card", 2000, true},
		{"positive deposit without mode", "", 2000, true},
		{"negative deposit", models.PaymentCash, -100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEditFields("2026-08-27", tt.paymentMode, tt.deposit)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEditFieldsRequiresDate(t *testing.T) {
	assert.Error(t, ValidateEditFields("", models.PaymentCash, 2000))
}
