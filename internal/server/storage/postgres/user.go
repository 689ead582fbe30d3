package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/shareall/internal/models"
	"github.com/iudanet/shareall/internal/server/storage"
)

// CreateUser creates a new user in the storage
func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, display_name, password, image)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		user.Username,
		user.DisplayName,
		user.Password,
		nullString(user.Image),
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrUserAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// GetUserByUsername retrieves user by username
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, display_name, password, image, created_at
		FROM users
		WHERE username = $1
	`
	return scanUser(s.db.QueryRowContext(ctx, query, username))
}

// GetUserByID retrieves user by ID
func (s *Storage) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, username, display_name, password, image, created_at
		FROM users
		WHERE id = $1
	`
	return scanUser(s.db.QueryRowContext(ctx, query, id))
}

// ListUsers returns one page of users ordered by id
func (s *Storage) ListUsers(ctx context.Context, excludeUsername string, req storage.PageRequest) (*storage.Page[models.User], error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM users WHERE ($1 = '' OR username <> $1)`
	if err := s.db.QueryRowContext(ctx, countQuery, excludeUsername).Scan(&total); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	query := `
		SELECT id, username, display_name, password, image, created_at
		FROM users
		WHERE ($1 = '' OR username <> $1)
		ORDER BY id
		LIMIT $2 OFFSET $3
	`

	rows, err := s.db.QueryContext(ctx, query, excludeUsername, req.Size, req.Offset())
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0, req.Size)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return storage.NewPage(users, total, req), nil
}

// UpdateUser updates display name and image of the user
func (s *Storage) UpdateUser(ctx context.Context, user *models.User) error {
	query := `UPDATE users SET display_name = $1, image = $2 WHERE id = $3`

	result, err := s.db.ExecContext(ctx, query, user.DisplayName, nullString(user.Image), user.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	if rows == 0 {
		return storage.ErrUserNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	var image sql.NullString

	err := row.Scan(&user.ID, &user.Username, &user.DisplayName, &user.Password, &image, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.Image = image.String

	return user, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
