package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/player-service/internal/models"
	"github.com/magabrotheeeer/player-service/internal/storage"
	"github.com/magabrotheeeer/player-service/internal/validation"
)

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

func TestStorage_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := New()

	player := testPlayer("firstPlayer2000", "Josef")
	require.NoError(t, s.Create(ctx, player))

	got, err := s.Get(ctx, player.ID)
	require.NoError(t, err)
	assert.Equal(t, player, *got)

	_, err = s.Get(ctx, uuid.NewString())
	assert.ErrorIs(t, err, storage.ErrPlayerNotFound)
}

func TestStorage_CreateConflicts(t *testing.T) {
	ctx := context.Background()
	s := New()

	first := testPlayer("firstPlayer2000", "Josef")
	require.NoError(t, s.Create(ctx, first))

	sameLogin := testPlayer("firstPlayer2000", "Borat")
	assert.ErrorIs(t, s.Create(ctx, sameLogin), storage.ErrUniqueConflict)

	sameScreenName := testPlayer("secondPlayer", "Josef")
	assert.ErrorIs(t, s.Create(ctx, sameScreenName), storage.ErrUniqueConflict)

	// Проигравшая запись не должна оставить следов ни в карте, ни в индексе.
	_, err := s.Get(ctx, sameLogin.ID)
	assert.ErrorIs(t, err, storage.ErrPlayerNotFound)
	taken, err := s.IsTaken(ctx, validation.FieldScreenName, "Borat", "")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestStorage_UpdateMovesIndexReservations(t *testing.T) {
	ctx := context.Background()
	s := New()

	player := testPlayer("firstPlayer2000", "Josef")
	require.NoError(t, s.Create(ctx, player))

	updated := player
	updated.Login = "updatedLogin"
	updated.ScreenName = "Adam"
	require.NoError(t, s.Update(ctx, updated))

	// Старые значения освобождены, новые заняты.
	taken, err := s.IsTaken(ctx, validation.FieldLogin, "firstPlayer2000", "")
	require.NoError(t, err)
	assert.False(t, taken)
	taken, err = s.IsTaken(ctx, validation.FieldLogin, "updatedLogin", "")
	require.NoError(t, err)
	assert.True(t, taken)
	taken, err = s.IsTaken(ctx, validation.FieldScreenName, "Josef", "")
	require.NoError(t, err)
	assert.False(t, taken)

	got, err := s.Get(ctx, player.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, *got)
}

func TestStorage_UpdateSelfNoop(t *testing.T) {
	ctx := context.Background()
	s := New()

	player := testPlayer("firstPlayer2000", "Josef")
	require.NoError(t, s.Create(ctx, player))

	// Перезапись собственных значений не считается конфликтом.
	require.NoError(t, s.Update(ctx, player))
}

func TestStorage_UpdateErrors(t *testing.T) {
	ctx := context.Background()
	s := New()

	first := testPlayer("firstPlayer2000", "Josef")
	second := testPlayer("secondPlayer", "Borat")
	require.NoError(t, s.Create(ctx, first))
	require.NoError(t, s.Create(ctx, second))

	missing := testPlayer("thirdPlayer", "John")
	assert.ErrorIs(t, s.Update(ctx, missing), storage.ErrPlayerNotFound)

	grab := second
	grab.Login = first.Login
	assert.ErrorIs(t, s.Update(ctx, grab), storage.ErrUniqueConflict)
}

func TestStorage_DeleteReleasesReservations(t *testing.T) {
	ctx := context.Background()
	s := New()

	player := testPlayer("firstPlayer2000", "Josef")
	require.NoError(t, s.Create(ctx, player))
	require.NoError(t, s.Delete(ctx, player.ID))

	_, err := s.Get(ctx, player.ID)
	assert.ErrorIs(t, err, storage.ErrPlayerNotFound)
	assert.ErrorIs(t, s.Delete(ctx, player.ID), storage.ErrPlayerNotFound)

	// Освобождённые значения можно занять заново.
	require.NoError(t, s.Create(ctx, testPlayer("firstPlayer2000", "Josef")))
}

func TestStorage_IsTakenExcludesOwnID(t *testing.T) {
	ctx := context.Background()
	s := New()

	player := testPlayer("firstPlayer2000", "Josef")
	require.NoError(t, s.Create(ctx, player))

	taken, err := s.IsTaken(ctx, validation.FieldLogin, player.Login, player.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = s.IsTaken(ctx, validation.FieldLogin, player.Login, uuid.NewString())
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestStorage_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New()
	err := s.Create(ctx, testPlayer("firstPlayer2000", "Josef"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStorage_ConcurrentCreateSameLogin(t *testing.T) {
	ctx := context.Background()
	s := New()

	const writers = 32
	var wg sync.WaitGroup
	errs := make([]error, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			player := testPlayer("racedLogin", fmt.Sprintf("screen-%d", i))
			errs[i] = s.Create(ctx, player)
		}(i)
	}
	wg.Wait()

	// Ровно один из гонщиков получает логин, остальные видят конфликт.
	var won, lost int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, storage.ErrUniqueConflict):
			lost++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, won)
	assert.Equal(t, writers-1, lost)
}
