package models

// Contribution is one admission's share of a daily summary: a deposit
// amount tagged with its payment category.
type Contribution struct {
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
}

// Zero reports whether the contribution carries nothing to adjust:
// either no amount or no recognised category.
func (c Contribution) Zero() bool {
	if c.Amount == 0 {
		return true
	}
	return c.Category != PaymentCash && c.Category != PaymentOnline
}

// IPDSummary holds the running totals for one admission day. It is
// mutated exclusively through the adjust operations; every field is
// clamped to zero so the counters can never go negative, whatever the
// sequence of adjustments.
type IPDSummary struct {
	DateKey         string  `gorm:"primaryKey;column:date_key" json:"date_key"`
	TotalAdmissions int64   `gorm:"column:total_admissions;not null;default:0" json:"total_admissions"`
	TotalDeposit    float64 `gorm:"column:total_deposit;not null;default:0" json:"total_deposit"`
	Cash            float64 `gorm:"column:cash;not null;default:0" json:"cash"`
	Online          float64 `gorm:"column:online;not null;default:0" json:"online"`
}

func (IPDSummary) TableName() string {
	return "ipd_summary"
}

// ApplyContribution rewrites the deposit totals for an edit that
// replaced old with new: the old contribution is subtracted from its
// category subtotal and from the grand total, the new one added, and
// every field floored at zero. Underflow from a missing prior
// adjustment is silently clamped, never propagated as an error.
func (s *IPDSummary) ApplyContribution(old, new Contribution) {
	if !old.Zero() {
		s.TotalDeposit -= old.Amount
		switch old.Category {
		case PaymentCash:
			s.Cash -= old.Amount
		case PaymentOnline:
			s.Online -= old.Amount
		}
	}
	if !new.Zero() {
		s.TotalDeposit += new.Amount
		switch new.Category {
		case PaymentCash:
			s.Cash += new.Amount
		case PaymentOnline:
			s.Online += new.Amount
		}
	}
	s.clamp()
}

// ApplyAdmissionDelta moves the admission counter, floored at zero.
func (s *IPDSummary) ApplyAdmissionDelta(delta int64) {
	s.TotalAdmissions += delta
	s.clamp()
}

func (s *IPDSummary) clamp() {
	if s.TotalAdmissions < 0 {
		s.TotalAdmissions = 0
	}
	if s.TotalDeposit < 0 {
		s.TotalDeposit = 0
	}
	if s.Cash < 0 {
		s.Cash = 0
	}
	if s.Online < 0 {
		s.Online = 0
	}
}

// OTSummary counts operation-theatre bookings per day.
type OTSummary struct {
	DateKey string `gorm:"primaryKey;column:date_key" json:"date_key"`
	TotalOT int64  `gorm:"column:total_ot;not null;default:0" json:"total_ot"`
}

func (OTSummary) TableName() string {
	return "ot_summary"
}

// ApplyDelta moves the OT counter, floored at zero.
func (s *OTSummary) ApplyDelta(delta int64) {
	s.TotalOT += delta
	if s.TotalOT < 0 {
		s.TotalOT = 0
	}
}
