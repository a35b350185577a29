package service

import (
	"testing"

	"ui_review_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAccessIdempotent(t *testing.T) {
	repo := repository.NewAccessLogRepository(newTestDB(t))
	svc := NewAccessService(repo, nil)

	recorded, err := svc.Record("w1", "/instructions")
	require.NoError(t, err)
	assert.True(t, recorded)

	recorded, err = svc.Record("w1", "/instructions")
	require.NoError(t, err)
	assert.False(t, recorded)

	// distinct path and distinct worker each count as new
	recorded, err = svc.Record("w1", "/task")
	require.NoError(t, err)
	assert.True(t, recorded)

	recorded, err = svc.Record("w2", "/instructions")
	require.NoError(t, err)
	assert.True(t, recorded)

	logs, err := repo.ListByWorker("w1")
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}
