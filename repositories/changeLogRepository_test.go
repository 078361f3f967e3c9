package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"GautamiHMS/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendFillsDefaults(t *testing.T) {
	db := newTestDB(t)
	repo := NewChangeLogRepository(db)

	entry := &models.ChangeLog{Type: "ipd", AdmissionID: "adm-1"}
	require.NoError(t, entry.SetChanges([]models.FieldChange{{Field: "deposit", Old: "", New: "2000"}}))
	require.NoError(t, repo.Append(context.Background(), entry))

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, models.ActorUnknown, entry.EditedBy)

	entries, err := repo.ListByAdmission(context.Background(), "adm-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	changes, err := entries[0].GetChanges()
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, "deposit", changes[0].Field)
}

func TestAppendKeepsActor(t *testing.T) {
	db := newTestDB(t)
	repo := NewChangeLogRepository(db)

	entry := &models.ChangeLog{Type: "ipd", AdmissionID: "adm-1", EditedBy: "reception1", Changes: "[]"}
	require.NoError(t, repo.Append(context.Background(), entry))
	assert.Equal(t, "reception1", entry.EditedBy)
}

func TestListRecentLimit(t *testing.T) {
	db := newTestDB(t)
	repo := NewChangeLogRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		entry := &models.ChangeLog{
			Type:        "ipd",
			AdmissionID: fmt.Sprintf("adm-%d", i),
			EditedAt:    base.Add(time.Duration(i) * time.Minute),
			Changes:     "[]",
		}
		require.NoError(t, repo.Append(ctx, entry))
	}

	entries, err := repo.ListRecent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "adm-4", entries[0].AdmissionID)

	// Non-positive limits fall back to the default.
	entries, err = repo.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}
