package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/reschool/internal/domain"
	"github.com/alexanderramin/reschool/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCredentials() *domain.Credentials {
	return &domain.Credentials{
		Username:     "ivanov",
		PasswordHash: "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8",
		Device:       testutil.Device(),
		SessionID:    "sess-1",
	}
}

func TestCredentialRepo_Get_NotFoundWhenEmpty(t *testing.T) {
	repo := NewSQLiteCredentialRepo(testutil.NewTestDB(t))

	_, err := repo.Get(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCredentialRepo_SaveAndGet(t *testing.T) {
	repo := NewSQLiteCredentialRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	want := sampleCredentials()
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, want.Username, got.Username)
	assert.Equal(t, want.PasswordHash, got.PasswordHash)
	assert.Equal(t, want.Device, got.Device)
	assert.Equal(t, "sess-1", got.SessionID)
	assert.WithinDuration(t, time.Now(), got.UpdatedAt, time.Minute)
}

func TestCredentialRepo_Save_ReplacesExisting(t *testing.T) {
	repo := NewSQLiteCredentialRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleCredentials()))
	other := sampleCredentials()
	other.Username = "petrova"
	require.NoError(t, repo.Save(ctx, other))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "petrova", got.Username)
}

func TestCredentialRepo_UpdateSession(t *testing.T) {
	repo := NewSQLiteCredentialRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	assert.ErrorIs(t, repo.UpdateSession(ctx, "x"), ErrNotFound)

	require.NoError(t, repo.Save(ctx, sampleCredentials()))
	require.NoError(t, repo.UpdateSession(ctx, "sess-2"))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sess-2", got.SessionID)
	assert.Equal(t, "ivanov", got.Username)
}

func TestCredentialRepo_Delete(t *testing.T) {
	repo := NewSQLiteCredentialRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Delete(ctx))
	require.NoError(t, repo.Save(ctx, sampleCredentials()))
	require.NoError(t, repo.Delete(ctx))

	_, err := repo.Get(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}
