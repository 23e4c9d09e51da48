// Package postgres реализует хранилище игроков на основе PostgreSQL.
// Уникальность логина и отображаемого имени обеспечивается ограничениями
// UNIQUE, поэтому при гонке конкурентных записей арбитром выступает сама
// база: проигравшая транзакция получает нарушение ограничения, которое
// транслируется в storage.ErrUniqueConflict.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/magabrotheeeer/player-service/internal/models"
	"github.com/magabrotheeeer/player-service/internal/storage"
	"github.com/magabrotheeeer/player-service/internal/validation"
)

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.postgres.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{DB: db}, nil
}

// Get возвращает запись игрока по id.
func (s *Storage) Get(ctx context.Context, id string) (*models.Player, error) {
	const op = "storage.postgres.Get"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, age, gender, login, password, role, screen_name
			  FROM players WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Player
	err := row.Scan(&result.ID, &result.Age, &result.Gender, &result.Login,
		&result.Password, &result.Role, &result.ScreenName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// Create вставляет новую запись игрока.
func (s *Storage) Create(ctx context.Context, player models.Player) error {
	const op = "storage.postgres.Create"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO players (id, age, gender, login, password, role, screen_name)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := s.DB.ExecContext(ctx, query,
		player.ID, player.Age, player.Gender, player.Login,
		player.Password, player.Role, player.ScreenName)
	if isUniqueViolation(err) {
		return storage.ErrUniqueConflict
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Update перезаписывает существующую запись игрока целиком.
func (s *Storage) Update(ctx context.Context, player models.Player) error {
	const op = "storage.postgres.Update"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE players
			  SET age = $1, gender = $2, login = $3, password = $4,
			      role = $5, screen_name = $6
			  WHERE id = $7`
	result, err := s.DB.ExecContext(ctx, query,
		player.Age, player.Gender, player.Login, player.Password,
		player.Role, player.ScreenName, player.ID)
	if isUniqueViolation(err) {
		return storage.ErrUniqueConflict
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return storage.ErrPlayerNotFound
	}
	return nil
}

// Delete удаляет запись игрока. Освобождение уникальных значений происходит
// вместе с удалением строки, отдельного шага индекса здесь нет.
func (s *Storage) Delete(ctx context.Context, id string) error {
	const op = "storage.postgres.Delete"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return storage.ErrPlayerNotFound
	}
	return nil
}

// IsTaken сообщает, занято ли значение поля игроком с другим id.
func (s *Storage) IsTaken(ctx context.Context, field validation.Field, value, excludeID string) (bool, error) {
	const op = "storage.postgres.IsTaken"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var column string
	switch field {
	case validation.FieldLogin:
		column = "login"
	case validation.FieldScreenName:
		column = "screen_name"
	default:
		return false, fmt.Errorf("%s: unknown unique field %q", op, field)
	}

	query := fmt.Sprintf(`SELECT EXISTS (
		SELECT 1 FROM players WHERE %s = $1 AND id::text <> $2
	)`, column)

	var taken bool
	if err := s.DB.QueryRowContext(ctx, query, value, excludeID).Scan(&taken); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return taken, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
