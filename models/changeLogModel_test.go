package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeLogRoundTrip(t *testing.T) {
	entry := ChangeLog{}
	changes := []FieldChange{
		{Field: "deposit", Old: "2000", New: "3500"},
		{Field: "bed", Old: "", New: "12"},
	}
	require.NoError(t, entry.SetChanges(changes))

	got, err := entry.GetChanges()
	require.NoError(t, err)
	assert.Equal(t, changes, got)
}

func TestChangeLogMarshalExpandsChanges(t *testing.T) {
	entry := ChangeLog{
		ID:          "chg-1",
		Type:        "ipd",
		AdmissionID: "adm-1",
		PatientID:   "UH-000042",
		PatientName: "Ramesh Kumar",
		EditedBy:    "reception1",
	}
	require.NoError(t, entry.SetChanges([]FieldChange{
		{Field: "deposit", Old: "2000", New: "3500"},
	}))

	raw, err := json.Marshal(entry)
	require.NoError(t, err)

	var decoded struct {
		EditedBy string        `json:"edited_by"`
		Changes  []FieldChange `json:"changes"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "reception1", decoded.EditedBy)
	require.Len(t, decoded.Changes, 1)
	assert.Equal(t, FieldChange{Field: "deposit", Old: "2000", New: "3500"}, decoded.Changes[0])
}
