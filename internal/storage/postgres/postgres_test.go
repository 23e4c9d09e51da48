package postgres

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/player-service/internal/migrations"
	"github.com/magabrotheeeer/player-service/internal/models"
	"github.com/magabrotheeeer/player-service/internal/storage"
	"github.com/magabrotheeeer/player-service/internal/validation"
)

func setupStorage(t *testing.T) *Storage {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("user"),
		tcpostgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx)
	require.NoError(t, err)

	s, err := New(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { s.DB.Close() })

	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(s.DB, migrationsPath))

	return s
}

func testPlayer(login, screenName string) models.Player {
	return models.Player{
		ID:         uuid.NewString(),
		Age:        25,
		Gender:     models.GenderMale,
		Login:      login,
		Password:   "firstPassword1",
		Role:       models.RoleUser,
		ScreenName: screenName,
	}
}

func TestStorage_CRUD(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()

	player := testPlayer("firstPlayer2000", "Josef")
	require.NoError(t, s.Create(ctx, player))

	got, err := s.Get(ctx, player.ID)
	require.NoError(t, err)
	assert.Equal(t, player, *got)

	_, err = s.Get(ctx, uuid.NewString())
	assert.ErrorIs(t, err, storage.ErrPlayerNotFound)

	updated := player
	updated.Login = "updatedLogin"
	updated.ScreenName = "Adam"
	require.NoError(t, s.Update(ctx, updated))

	got, err = s.Get(ctx, player.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, *got)

	require.NoError(t, s.Delete(ctx, player.ID))
	assert.ErrorIs(t, s.Delete(ctx, player.ID), storage.ErrPlayerNotFound)
}

func TestStorage_UniqueConstraints(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()

	first := testPlayer("firstPlayer2000", "Josef")
	require.NoError(t, s.Create(ctx, first))

	assert.ErrorIs(t, s.Create(ctx, testPlayer("firstPlayer2000", "Borat")), storage.ErrUniqueConflict)
	assert.ErrorIs(t, s.Create(ctx, testPlayer("secondPlayer", "Josef")), storage.ErrUniqueConflict)

	second := testPlayer("secondPlayer", "Borat")
	require.NoError(t, s.Create(ctx, second))

	grab := second
	grab.Login = first.Login
	assert.ErrorIs(t, s.Update(ctx, grab), storage.ErrUniqueConflict)

	missing := testPlayer("thirdPlayer", "John")
	assert.ErrorIs(t, s.Update(ctx, missing), storage.ErrPlayerNotFound)
}

func TestStorage_IsTaken(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()

	player := testPlayer("firstPlayer2000", "Josef")
	require.NoError(t, s.Create(ctx, player))

	taken, err := s.IsTaken(ctx, validation.FieldLogin, "firstPlayer2000", "")
	require.NoError(t, err)
	assert.True(t, taken)

	// Собственная запись не считается конфликтом.
	taken, err = s.IsTaken(ctx, validation.FieldLogin, "firstPlayer2000", player.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = s.IsTaken(ctx, validation.FieldScreenName, "Borat", "")
	require.NoError(t, err)
	assert.False(t, taken)

	_, err = s.IsTaken(ctx, validation.Field("password"), "x", "")
	assert.Error(t, err)
}
