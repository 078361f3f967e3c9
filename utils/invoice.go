package utils

import (
	"fmt"
	"strings"
	"time"

	"GautamiHMS/models"

	"github.com/shopspring/decimal"
)

// InvoiceLine is a single billed service on an invoice.
type InvoiceLine struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// Invoice is the printable bill document for one admission. It carries
// everything the front desk prints: hospital header, patient and stay
// details, itemized services, payment summary, and the grand total in
// words.
type Invoice struct {
	BillNumber    string          `json:"bill_number"`
	HospitalName  string          `json:"hospital_name"`
	HospitalPhone string          `json:"hospital_phone"`
	PatientName   string          `json:"patient_name"`
	UHID          string          `json:"uhid"`
	AdmissionID   string          `json:"admission_id"`
	AdmissionDate string          `json:"admission_date"`
	DischargeDate string          `json:"discharge_date,omitempty"`
	RoomType      string          `json:"room_type"`
	DoctorName    string          `json:"doctor_name"`
	Lines         []InvoiceLine   `json:"lines"`
	GrossTotal    decimal.Decimal `json:"gross_total"`
	TotalDeposit  decimal.Decimal `json:"total_deposit"`
	BalanceDue    decimal.Decimal `json:"balance_due"`
	AmountInWords string          `json:"amount_in_words"`
	GeneratedAt   time.Time       `json:"generated_at"`
}

// BuildInvoice assembles the bill document for an admission from its
// billing record and service lines. Totals are computed with decimal
// arithmetic so paisa amounts survive the round trip.
func BuildInvoice(admission *models.Admission, billing *models.Billing, lines []InvoiceLine) *Invoice {
	gross := decimal.Zero
	for i := range lines {
		lines[i].Amount = lines[i].UnitPrice.Mul(decimal.NewFromInt(int64(lines[i].Quantity)))
		gross = gross.Add(lines[i].Amount)
	}

	deposit := decimal.Zero
	billNumber := ""
	if billing != nil {
		deposit = decimal.NewFromFloat(billing.TotalDeposit)
		billNumber = billing.BillNumber
	}

	balance := gross.Sub(deposit)
	if balance.IsNegative() {
		balance = decimal.Zero
	}

	inv := &Invoice{
		BillNumber:    billNumber,
		HospitalName:  "Gautami Hospital",
		PatientName:   admission.PatientName,
		UHID:          admission.PatientID,
		AdmissionID:   admission.ID,
		AdmissionDate: admission.DateKey,
		RoomType:      admission.WardID,
		DoctorName:    admission.Doctor.Name,
		Lines:         lines,
		GrossTotal:    gross,
		TotalDeposit:  deposit,
		BalanceDue:    balance,
		AmountInWords: AmountInWords(gross),
		GeneratedAt:   time.Now(),
	}
	return inv
}

// InvoiceFilename builds the download name for a bill:
// Bill_{patientName}_{DDMMYYYY} with the bill number appended when one
// has been issued. Spaces in the patient name become underscores.
func InvoiceFilename(patientName, dateKey, billNumber string) string {
	name := strings.ReplaceAll(strings.TrimSpace(patientName), " ", "_")
	day := dateKey
	if t, err := time.Parse("2006-01-02", dateKey); err == nil {
		day = t.Format("02012006")
	}
	if billNumber != "" {
		return fmt.Sprintf("Bill_%s_%s_%s.pdf", name, day, billNumber)
	}
	return fmt.Sprintf("Bill_%s_%s.pdf", name, day)
}

var (
	onesWords = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
		"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
	tensWords = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
)

// AmountInWords renders a rupee amount in Indian-system words, e.g.
// 123456.50 -> "One Lakh Twenty Three Thousand Four Hundred Fifty Six Rupees and Fifty Paise Only".
func AmountInWords(amount decimal.Decimal) string {
	if amount.IsNegative() {
		amount = amount.Neg()
	}
	rupees := amount.Truncate(0)
	paise := amount.Sub(rupees).Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	words := integerInWords(rupees.IntPart())
	if words == "" {
		words = "Zero"
	}
	out := words + " Rupees"
	if paise > 0 {
		out += " and " + integerInWords(paise) + " Paise"
	}
	return out + " Only"
}

// integerInWords spells n using crore/lakh/thousand grouping.
func integerInWords(n int64) string {
	if n == 0 {
		return ""
	}

	var parts []string
	appendPart := func(v int64, unit string) {
		if v > 0 {
			w := belowThousand(v)
			if unit != "" {
				w += " " + unit
			}
			parts = append(parts, w)
		}
	}

	appendPart(n/10000000, "Crore")
	n %= 10000000
	appendPart(n/100000, "Lakh")
	n %= 100000
	appendPart(n/1000, "Thousand")
	n %= 1000
	appendPart(n, "")

	return strings.Join(parts, " ")
}

func belowThousand(n int64) string {
	var parts []string
	if n >= 100 {
		parts = append(parts, onesWords[n/100]+" Hundred")
		n %= 100
	}
	if n >= 20 {
		if n%10 > 0 {
			parts = append(parts, tensWords[n/10]+" "+onesWords[n%10])
		} else {
			parts = append(parts, tensWords[n/10])
		}
	} else if n > 0 {
		parts = append(parts, onesWords[n])
	}
	return strings.Join(parts, " ")
}
