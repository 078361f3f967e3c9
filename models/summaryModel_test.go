package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContributionZero(t *testing.T) {
	assert.True(t, Contribution{}.Zero())
	assert.True(t, Contribution{Amount: 0, Category: PaymentCash}.Zero())
	assert.True(t, Contribution{Amount: 500, Category: "cheque"}.Zero())
	assert.True(t, Contribution{Amount: 500}.Zero())
	assert.False(t, Contribution{Amount: 500, Category: PaymentCash}.Zero())
	assert.False(t, Contribution{Amount: 500, Category: PaymentOnline}.Zero())
}

func TestApplyContribution(t *testing.T) {
	tests := []struct {
		name     string
		start    IPDSummary
		old      Contribution
		new      Contribution
		expected IPDSummary
	}{
		{
			name:     "first deposit",
			start:    IPDSummary{},
			old:      Contribution{},
			new:      Contribution{Amount: 2000, Category: PaymentCash},
			expected: IPDSummary{TotalDeposit: 2000, Cash: 2000},
		},
		{
			name:     "raise deposit same category",
			start:    IPDSummary{TotalDeposit: 2000, Cash: 2000},
			old:      Contribution{Amount: 2000, Category: PaymentCash},
			new:      Contribution{Amount: 3500, Category: PaymentCash},
			expected: IPDSummary{TotalDeposit: 3500, Cash: 3500},
		},
		{
			name:     "move deposit between categories",
			start:    IPDSummary{TotalDeposit: 2000, Cash: 2000},
			old:      Contribution{Amount: 2000, Category: PaymentCash},
			new:      Contribution{Amount: 2000, Category: PaymentOnline},
			expected: IPDSummary{TotalDeposit: 2000, Online: 2000},
		},
		{
			name:     "remove deposit",
			start:    IPDSummary{TotalDeposit: 2000, Online: 2000},
			old:      Contribution{Amount: 2000, Category: PaymentOnline},
			new:      Contribution{},
			expected: IPDSummary{},
		},
		{
			name:     "underflow clamps to zero",
			start:    IPDSummary{TotalDeposit: 500, Cash: 500},
			old:      Contribution{Amount: 2000, Category: PaymentCash},
			new:      Contribution{},
			expected: IPDSummary{},
		},
		{
			name:     "unknown old category is skipped, new still added",
			start:    IPDSummary{TotalDeposit: 2000, Cash: 2000},
			old:      Contribution{Amount: 2000, Category: "cheque"},
			new:      Contribution{Amount: 1000, Category: PaymentCash},
			expected: IPDSummary{TotalDeposit: 3000, Cash: 3000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.start
			s.ApplyContribution(tt.old, tt.new)
			assert.Equal(t, tt.expected, s)
		})
	}
}

// Adjusting a contribution in and straight back out must land on the
// starting totals, as long as nothing clamps along the way.
func TestApplyContributionRoundTrip(t *testing.T) {
	start := IPDSummary{TotalAdmissions: 3, TotalDeposit: 9000, Cash: 5000, Online: 4000}
	dep := Contribution{Amount: 1500, Category: PaymentOnline}

	s := start
	s.ApplyContribution(Contribution{}, dep)
	s.ApplyContribution(dep, Contribution{})
	assert.Equal(t, start, s)
}

func TestApplyContributionNeverNegative(t *testing.T) {
	s := IPDSummary{}
	s.ApplyContribution(Contribution{Amount: 100000, Category: PaymentCash}, Contribution{})
	assert.GreaterOrEqual(t, s.TotalDeposit, 0.0)
	assert.GreaterOrEqual(t, s.Cash, 0.0)
	assert.GreaterOrEqual(t, s.Online, 0.0)
}

func TestApplyAdmissionDelta(t *testing.T) {
	s := IPDSummary{}
	s.ApplyAdmissionDelta(1)
	assert.Equal(t, int64(1), s.TotalAdmissions)
	s.ApplyAdmissionDelta(-1)
	assert.Equal(t, int64(0), s.TotalAdmissions)
	s.ApplyAdmissionDelta(-5)
	assert.Equal(t, int64(0), s.TotalAdmissions)
}

func TestOTSummaryApplyDelta(t *testing.T) {
	s := OTSummary{}
	s.ApplyDelta(2)
	assert.Equal(t, int64(2), s.TotalOT)
	s.ApplyDelta(-3)
	assert.Equal(t, int64(0), s.TotalOT)
}
