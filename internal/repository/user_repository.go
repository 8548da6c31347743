package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/vinash85/polypLabeler/internal/models"
)

// ErrUsernameTaken is returned when a create collides with an existing
// username.
var ErrUsernameTaken = errors.New("username already taken")

const mysqlDuplicateEntry = 1062

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id uint64) (*models.User, error)
	UpdatePassword(ctx context.Context, userID uint64, passwordHash string) error
	SetResetToken(ctx context.Context, userID uint64, tokenHash string) error
	FindByResetToken(ctx context.Context, tokenHash string) (*models.User, error)
	ClearResetToken(ctx context.Context, userID uint64) error

	// Progress tracker operations. Advance is a single relative update so
	// concurrent requests for the same user cannot lose increments.
	AdvanceProgress(ctx context.Context, userID uint64) error
	SetProgress(ctx context.Context, userID uint64, value int32) error
	GetProgress(ctx context.Context, userID uint64) (int32, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (fullname, username, password, progress, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		user.Fullname, user.Username, user.Password, user.Progress,
		time.Now(), time.Now())
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return ErrUsernameTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	user.ID = uint64(id)

	return nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, fullname, username, password, progress, password_reset_token, created_at, updated_at
		FROM users
		WHERE username = ?
	`
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID, &user.Fullname, &user.Username, &user.Password,
		&user.Progress, &user.PasswordResetToken, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}
	return user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	query := `
		SELECT id, fullname, username, password, progress, password_reset_token, created_at, updated_at
		FROM users
		WHERE id = ?
	`
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Fullname, &user.Username, &user.Password,
		&user.Progress, &user.PasswordResetToken, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by id: %w", err)
	}
	return user, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID uint64, passwordHash string) error {
	query := `UPDATE users SET password = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, passwordHash, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func (r *userRepository) SetResetToken(ctx context.Context, userID uint64, tokenHash string) error {
	query := `UPDATE users SET password_reset_token = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, tokenHash, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}
	return nil
}

func (r *userRepository) FindByResetToken(ctx context.Context, tokenHash string) (*models.User, error) {
	query := `
		SELECT id, fullname, username, password, progress, password_reset_token, created_at, updated_at
		FROM users
		WHERE password_reset_token = ?
	`
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, tokenHash).Scan(
		&user.ID, &user.Fullname, &user.Username, &user.Password,
		&user.Progress, &user.PasswordResetToken, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by reset token: %w", err)
	}
	return user, nil
}

func (r *userRepository) ClearResetToken(ctx context.Context, userID uint64) error {
	query := `UPDATE users SET password_reset_token = NULL, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to clear reset token: %w", err)
	}
	return nil
}

func (r *userRepository) AdvanceProgress(ctx context.Context, userID uint64) error {
	query := `UPDATE users SET progress = progress + 1, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to advance progress: %w", err)
	}
	return nil
}

func (r *userRepository) SetProgress(ctx context.Context, userID uint64, value int32) error {
	query := `UPDATE users SET progress = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, value, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to set progress: %w", err)
	}
	return nil
}

func (r *userRepository) GetProgress(ctx context.Context, userID uint64) (int32, error) {
	query := `SELECT progress FROM users WHERE id = ?`
	var progress int32
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&progress)
	if err != nil {
		return 0, fmt.Errorf("failed to get progress: %w", err)
	}
	return progress, nil
}
