// Package postgres реализует порты персистентности модуля учетных записей.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"bookstore/internal/account/domain/entities"
	"bookstore/internal/account/ports/repositories"
	"bookstore/pkg/logger"
)

// Код SQLSTATE нарушения уникальности.
const uniqueViolationCode = "23505"

// Имена уникальных ограничений таблицы users.
const (
	constraintUsersLogin = "users_login_key"
	constraintUsersEmail = "users_email_key"
)

// PgxPoolInterface описывает используемое подмножество pgxpool.Pool.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// UserRepository реализует интерфейс repositories.UserRepository для работы с Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает новый экземпляр репозитория пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, login, email, password_hash, first_name, last_name,
        lang_key, activated, COALESCE(activation_key, ''), created_at, updated_at`

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID,
		&user.Login,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.LangKey,
		&user.Activated,
		&user.ActivationKey,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create создает нового pending пользователя вместе с правом ROLE_USER.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		log.Error(ctx, "error starting transaction", zap.Error(err))
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
        INSERT INTO users (login, email, password_hash, first_name, last_name, lang_key, activation_key)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING ` + userColumns

	createdUser, err := scanUser(tx.QueryRow(ctx, query,
		user.Login,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.LangKey,
		user.ActivationKey,
	))
	if err != nil {
		// Гонка двух регистраций закрывается уникальными индексами,
		// проигравшая сторона получает доменную ошибку конфликта.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			log.Debug(ctx, "unique constraint violated", zap.String("constraint", pgErr.ConstraintName))
			switch pgErr.ConstraintName {
			case constraintUsersEmail:
				return nil, entities.ErrEmailAlreadyUsed
			default:
				return nil, entities.ErrLoginAlreadyUsed
			}
		}
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	authorities := user.Authorities
	if len(authorities) == 0 {
		authorities = []string{entities.RoleUser}
	}
	for _, authority := range authorities {
		if _, err := tx.Exec(ctx,
			`INSERT INTO user_authority (user_id, authority_name) VALUES ($1, $2)`,
			createdUser.ID, authority,
		); err != nil {
			log.Error(ctx, "error granting authority", zap.Error(err))
			return nil, fmt.Errorf("error granting authority: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error(ctx, "error committing transaction", zap.Error(err))
		return nil, fmt.Errorf("error committing transaction: %w", err)
	}

	createdUser.Authorities = authorities
	return createdUser, nil
}

// FindByID находит пользователя по ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByID"))

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("id", id))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by id", zap.Error(err))
		return nil, fmt.Errorf("error querying user by id: %w", err)
	}

	return user, nil
}

// FindByLogin находит пользователя по логину.
func (r *UserRepository) FindByLogin(ctx context.Context, login string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByLogin"))

	query := `SELECT ` + userColumns + ` FROM users WHERE login = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, login))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("login", login))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by login", zap.Error(err))
		return nil, fmt.Errorf("error querying user by login: %w", err)
	}

	return user, nil
}

// FindByEmail находит пользователя по email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByEmail"))

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("email", email))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by email", zap.Error(err))
		return nil, fmt.Errorf("error querying user by email: %w", err)
	}

	return user, nil
}

// FindWithAuthorities находит пользователя по ID вместе со списком его прав.
func (r *UserRepository) FindWithAuthorities(ctx context.Context, id string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindWithAuthorities"))

	query := `
        SELECT u.id, u.login, u.email, u.password_hash, u.first_name, u.last_name,
               u.lang_key, u.activated, COALESCE(u.activation_key, ''),
               u.created_at, u.updated_at,
               COALESCE(array_agg(ua.authority_name) FILTER (WHERE ua.authority_name IS NOT NULL), '{}')
        FROM users u
        LEFT JOIN user_authority ua ON ua.user_id = u.id
        WHERE u.id = $1
        GROUP BY u.id
    `

	var user entities.User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Login,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.LangKey,
		&user.Activated,
		&user.ActivationKey,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.Authorities,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("id", id))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user with authorities", zap.Error(err))
		return nil, fmt.Errorf("error querying user with authorities: %w", err)
	}

	if user.Authorities == nil {
		user.Authorities = []string{}
	}
	return &user, nil
}

// Activate атомарно переводит pending пользователя в состояние active.
// Условие activated = FALSE делает повторную активацию тем же ключом невозможной.
func (r *UserRepository) Activate(ctx context.Context, activationKey string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Activate"))

	query := `
        UPDATE users
        SET activated = TRUE, activation_key = NULL, updated_at = $2
        WHERE activation_key = $1 AND activated = FALSE
        RETURNING ` + userColumns

	user, err := scanUser(r.pool.QueryRow(ctx, query, activationKey, time.Now().UTC()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "no pending user for activation key")
			return nil, entities.ErrActivationKeyNotFound
		}
		log.Error(ctx, "error activating user", zap.Error(err))
		return nil, fmt.Errorf("error activating user: %w", err)
	}

	return user, nil
}

// Update обновляет профиль пользователя (имя, фамилию, email).
func (r *UserRepository) Update(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Update"))

	query := `
        UPDATE users
        SET first_name = $2, last_name = $3, email = $4, lang_key = $5, updated_at = $6
        WHERE id = $1
        RETURNING ` + userColumns

	updatedUser, err := scanUser(r.pool.QueryRow(ctx, query,
		user.ID,
		user.FirstName,
		user.LastName,
		user.Email,
		user.LangKey,
		time.Now().UTC(),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found for update", zap.String("id", user.ID))
			return nil, entities.ErrUserNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			log.Debug(ctx, "email already in use", zap.String("id", user.ID))
			return nil, entities.ErrEmailAlreadyUsed
		}
		log.Error(ctx, "error updating user", zap.Error(err))
		return nil, fmt.Errorf("error updating user: %w", err)
	}

	return updatedUser, nil
}

// UpdatePassword сохраняет новый хэш пароля пользователя.
func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "UpdatePassword"))

	query := `
        UPDATE users
        SET password_hash = $2, updated_at = $3
        WHERE id = $1
    `

	result, err := r.pool.Exec(ctx, query, id, passwordHash, time.Now().UTC())
	if err != nil {
		log.Error(ctx, "error updating password", zap.Error(err))
		return fmt.Errorf("error updating password: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "user not found for password update", zap.String("id", id))
		return entities.ErrUserNotFound
	}

	return nil
}

// Delete удаляет пользователя по ID.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Delete"))

	query := `
        DELETE FROM users
        WHERE id = $1
    `

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		log.Error(ctx, "error deleting user", zap.Error(err))
		return fmt.Errorf("error deleting user: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "user not found for deletion", zap.String("id", id))
		return entities.ErrUserNotFound
	}

	return nil
}
