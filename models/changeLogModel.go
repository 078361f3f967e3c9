package models

import (
	"encoding/json"
	"time"
)

// ActorUnknown is recorded when no actor identity was supplied with an
// edit.
const ActorUnknown = "unknown"

// FieldChange is one line of an edit diff.
type FieldChange struct {
	Field string `json:"field"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

// ChangeLog is an append-only audit entry: one row per successful edit
// submission, capturing the full diff, who made it and when. Entries
// are never updated or deleted.
type ChangeLog struct {
	ID            string    `gorm:"primaryKey;column:id" json:"id"`
	Type          string    `gorm:"column:type;not null" json:"type"`
	AdmissionID   string    `gorm:"column:admission_id;not null;index" json:"admission_id"`
	PatientID     string    `gorm:"column:patient_id;index" json:"patient_id"`
	DateKey       string    `gorm:"column:date_key" json:"date_key"`
	PatientName   string    `gorm:"column:patient_name" json:"patient_name"`
	Changes       string    `gorm:"column:changes;type:text;not null" json:"-"`
	EditedBy      string    `gorm:"column:edited_by;not null" json:"edited_by"`
	EditedAt      time.Time `gorm:"column:edited_at;autoCreateTime" json:"edited_at"`
}

func (ChangeLog) TableName() string {
	return "change_log"
}

// SetChanges serialises the diff into the Changes column.
func (c *ChangeLog) SetChanges(changes []FieldChange) error {
	raw, err := json.Marshal(changes)
	if err != nil {
		return err
	}
	c.Changes = string(raw)
	return nil
}

// GetChanges deserialises the stored diff.
func (c *ChangeLog) GetChanges() ([]FieldChange, error) {
	var changes []FieldChange
	if err := json.Unmarshal([]byte(c.Changes), &changes); err != nil {
		return nil, err
	}
	return changes, nil
}

// MarshalJSON expands the stored diff into a changes array so API
// consumers see the field-level entries, not the raw column text.
func (c ChangeLog) MarshalJSON() ([]byte, error) {
	type entry ChangeLog
	changes, err := c.GetChanges()
	if err != nil {
		changes = []FieldChange{}
	}
	return json.Marshal(struct {
		entry
		Changes []FieldChange `json:"changes"`
	}{entry(c), changes})
}
