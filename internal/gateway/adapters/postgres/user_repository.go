// Package postgres хранит учетные записи Gateway в PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"notegrid/internal/gateway/domain/entities"
	"notegrid/internal/gateway/ports/repositories"
	"notegrid/pkg/db/postgres"
	"notegrid/pkg/logger"
)

const (
	queryInsertUser = `INSERT INTO users (id, email, password_hash, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5)`

	querySelectUserByEmail = `SELECT id, email, password_hash, created_at, updated_at
         FROM users
         WHERE lower(email) = lower($1)`

	querySelectUserByID = `SELECT id, email, password_hash, created_at, updated_at
         FROM users
         WHERE id = $1`

	uniqueViolationCode = "23505"
)

// Константы ошибок.
const (
	ErrCreateUser = "failed to create user"
	ErrFindUser   = "failed to find user"
)

const LogEmailTaken = "email already registered"

// UserRepository реализует repositories.UserRepository.
type UserRepository struct {
	db postgres.Querier
}

// NewUserRepository создает новый репозиторий пользователей.
func NewUserRepository(db postgres.Querier) *UserRepository {
	return &UserRepository{db: db}
}

// Create сохраняет нового пользователя. Повтор email дает ErrUserAlreadyExists.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	_, err := r.db.Exec(ctx, queryInsertUser,
		user.ID, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			log.Debug(ctx, LogEmailTaken)
			return repositories.ErrUserAlreadyExists
		}
		log.Error(ctx, ErrCreateUser, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrCreateUser, err)
	}

	return nil
}

// FindByEmail ищет пользователя по email без учета регистра.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, "FindByEmail", querySelectUserByEmail, email)
}

// FindByID ищет пользователя по идентификатору.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	return r.findOne(ctx, "FindByID", querySelectUserByID, id)
}

func (r *UserRepository) findOne(ctx context.Context, method, query, arg string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", method))

	var user entities.User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repositories.ErrUserNotFound
		}
		log.Error(ctx, ErrFindUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrFindUser, err)
	}

	return &user, nil
}

var _ repositories.UserRepository = (*UserRepository)(nil)
