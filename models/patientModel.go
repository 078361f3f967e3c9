package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Doctor model
type Doctor struct {
	ID         string      `gorm:"primaryKey;column:id" json:"id"`
	Name       string      `gorm:"column:name;not null;index" json:"name"`
	Department string      `gorm:"column:department" json:"department"`
	OPDCharge  float64     `gorm:"column:opd_charge" json:"opd_charge"`
	IPDCharge  float64     `gorm:"column:ipd_charge" json:"ipd_charge"`
	CreatedAt  time.Time   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Admissions []Admission `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (Doctor) TableName() string {
	return "doctor"
}

// Patient model. The UHID is the generated hospital-wide identifier
// handed to the patient at first registration.
type Patient struct {
	UHID       string      `gorm:"primaryKey;column:uhid" json:"uhid"`
	Name       string      `gorm:"column:name;not null;index" json:"name"`
	Phone      string      `gorm:"column:phone;index" json:"phone"`
	Gender     string      `gorm:"column:gender;check:gender IN ('Male', 'Female', 'Other')" json:"gender"`
	Age        int         `gorm:"column:age" json:"age"`
	AgeUnit    string      `gorm:"column:age_unit;default:'years'" json:"age_unit"`
	Address    string      `gorm:"column:address" json:"address"`
	CreatedAt  time.Time   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Admissions []Admission `gorm:"foreignKey:PatientID;references:UHID" json:"-"`
	Billings   []Billing   `gorm:"foreignKey:PatientID;references:UHID" json:"-"`
	OTBookings []OTBooking `gorm:"foreignKey:PatientID;references:UHID" json:"-"`
}

func (Patient) TableName() string {
	return "patient"
}

// Ward groups beds by room type (General, Deluxe, ICU, ...).
type Ward struct {
	ID   string `gorm:"primaryKey;column:id" json:"id"`
	Name string `gorm:"column:name;unique;not null" json:"name"`
	Beds []Bed  `gorm:"foreignKey:WardID;references:ID" json:"-"`
}

func (Ward) TableName() string {
	return "ward"
}

// Bed statuses. Beds are provisioned by seed data and only ever flip
// between these two states.
const (
	BedAvailable = "Available"
	BedOccupied  = "Occupied"
)

// Bed model
type Bed struct {
	ID     uint   `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	WardID string `gorm:"column:ward_id;not null;index" json:"ward_id"`
	Number string `gorm:"column:number;not null" json:"number"`
	Status string `gorm:"column:status;check:status IN ('Available', 'Occupied');not null;default:'Available'" json:"status"`
	Ward   Ward   `gorm:"foreignKey:WardID;references:ID" json:"-"`
}

func (Bed) TableName() string {
	return "bed"
}

// Admission statuses.
const (
	AdmissionActive     = "active"
	AdmissionDischarged = "discharged"
)

// Admission (IPD) record. DateKey is the admission day in YYYY-MM-DD
// form and is the partition the daily summary is keyed on. PatientName
// and PatientPhone are denormalized copies kept for list views.
type Admission struct {
	ID            string    `gorm:"primaryKey;column:id" json:"id"`
	PatientID     string    `gorm:"column:patient_id;not null;index" json:"patient_id"`
	DateKey       string    `gorm:"column:date_key;not null;index" json:"date_key"`
	AdmissionDate string    `gorm:"column:admission_date;not null" json:"admission_date"`
	AdmissionTime string    `gorm:"column:admission_time" json:"admission_time"`
	Source        string    `gorm:"column:source" json:"source"`
	Type          string    `gorm:"column:type" json:"type"`
	WardID        string    `gorm:"column:ward_id" json:"ward_id"`
	BedID         *uint     `gorm:"column:bed_id;index" json:"bed_id"`
	DoctorID      string    `gorm:"column:doctor_id;index" json:"doctor_id"`
	ReferDoctor   string    `gorm:"column:refer_doctor" json:"refer_doctor"`
	Status        string    `gorm:"column:status;check:status IN ('active', 'discharged');not null;default:'active'" json:"status"`
	PatientName   string    `gorm:"column:patient_name" json:"patient_name"`
	PatientPhone  string    `gorm:"column:patient_phone" json:"patient_phone"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Patient       Patient   `gorm:"foreignKey:PatientID;references:UHID" json:"-"`
	Doctor        Doctor    `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (Admission) TableName() string {
	return "admission"
}

// Payment categories feeding the daily summary split.
const (
	PaymentCash   = "cash"
	PaymentOnline = "online"
)

// AmountTypeAdvance tags the single deposit payment of an admission
// that the edit flow updates in place. At most one payment per
// admission should carry it; nothing enforces this, and lookups take
// the first match in payment-id order.
const AmountTypeAdvance = "advance"

// Billing record for one admission: running deposit total plus the
// individual payment rows.
type Billing struct {
	ID           string    `gorm:"primaryKey;column:id" json:"id"`
	BillNumber   string    `gorm:"column:bill_number;index" json:"bill_number"`
	AdmissionID  string    `gorm:"column:admission_id;not null;uniqueIndex" json:"admission_id"`
	PatientID    string    `gorm:"column:patient_id;not null;index" json:"patient_id"`
	DateKey      string    `gorm:"column:date_key;not null;index" json:"date_key"`
	TotalDeposit float64   `gorm:"column:total_deposit" json:"total_deposit"`
	PaymentMode  string    `gorm:"column:payment_mode" json:"payment_mode"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Payments     []Payment `gorm:"foreignKey:BillingID;references:ID" json:"payments"`
}

func (Billing) TableName() string {
	return "billing"
}

// Payment is a single money entry under a billing record.
type Payment struct {
	ID         string    `gorm:"primaryKey;column:id" json:"id"`
	BillingID  string    `gorm:"column:billing_id;not null;index" json:"billing_id"`
	Amount     float64   `gorm:"column:amount;not null" json:"amount"`
	Category   string    `gorm:"column:category;check:category IN ('cash', 'online')" json:"category"`
	AmountType string    `gorm:"column:amount_type" json:"amount_type"`
	Through    string    `gorm:"column:through" json:"through"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Payment) TableName() string {
	return "payment"
}

// OT booking statuses.
const (
	OTScheduled = "scheduled"
	OTCompleted = "completed"
	OTCancelled = "cancelled"
)

// OTBooking model
type OTBooking struct {
	ID        string    `gorm:"primaryKey;column:id" json:"id"`
	PatientID string    `gorm:"column:patient_id;not null;index" json:"patient_id"`
	DateKey   string    `gorm:"column:date_key;not null;index" json:"date_key"`
	Procedure string    `gorm:"column:procedure;not null" json:"procedure"`
	Surgeon   string    `gorm:"column:surgeon" json:"surgeon"`
	Status    string    `gorm:"column:status;check:status IN ('scheduled', 'completed', 'cancelled');not null;default:'scheduled'" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Patient   Patient   `gorm:"foreignKey:PatientID;references:UHID" json:"-"`
}

func (OTBooking) TableName() string {
	return "ot_booking"
}

// SeedWards provisions the wards and their beds. Beds are never
// created or destroyed by the admission flows, only flipped between
// Available and Occupied.
func SeedWards(db *gorm.DB) error {
	initialWards := []Ward{
		{ID: "general", Name: "General"},
		{ID: "semi_private", Name: "Semi Private"},
		{ID: "private", Name: "Private"},
		{ID: "deluxe", Name: "Deluxe"},
		{ID: "icu", Name: "ICU"},
	}
	bedsPerWard := map[string]int{
		"general":      12,
		"semi_private": 8,
		"private":      6,
		"deluxe":       4,
		"icu":          6,
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, ward := range initialWards {
			if err := tx.FirstOrCreate(&ward, Ward{ID: ward.ID}).Error; err != nil {
				return err
			}
			var count int64
			if err := tx.Model(&Bed{}).Where("ward_id = ?", ward.ID).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			for i := 1; i <= bedsPerWard[ward.ID]; i++ {
				bed := Bed{WardID: ward.ID, Number: fmt.Sprintf("%s-%02d", strings.ToUpper(ward.ID[:1]), i), Status: BedAvailable}
				if err := tx.Create(&bed).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}
