package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"careerpath/internal/config"
	"careerpath/internal/models"
	"careerpath/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

//go:embed schema.sql
var schema string

// DB is the subset of *pgxpool.Pool the repository uses.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

type PostgresRepo struct {
	db DB
}

func New(ctx context.Context, cfg *config.Postgres) (*PostgresRepo, error) {
	const op = "storage.postgres.New"

	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse config: %w", op, err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = time.Minute * 30

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create pool: %w", op, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: failed to ping database: %w", op, err)
	}

	return &PostgresRepo{db: pool}, nil
}

// NewWithDB wraps an already opened pool.
func NewWithDB(db DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

// * EnsureSchema applies the idempotent DDL bundled with the binary.
func (r *PostgresRepo) EnsureSchema(ctx context.Context) error {
	const op = "storage.postgres.EnsureSchema"

	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// SaveAccount inserts the account and runs confirm inside the same transaction.
// The row is committed only if confirm returns nil. The unique index on email
// is the only guard against concurrent sign-ups with the same address.
func (r *PostgresRepo) SaveAccount(
	ctx context.Context,
	name, email string,
	passHash []byte,
	confirm func(models.Account) error,
) (models.Account, error) {
	const op = "storage.postgres.SaveAccount"

	query := `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at;
	`

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return models.Account{}, fmt.Errorf("%s: failed to begin tx: %w", op, err)
	}

	acc := models.Account{
		Name:     name,
		Email:    email,
		PassHash: passHash,
	}

	err = tx.QueryRow(ctx, query, name, email, string(passHash)).Scan(&acc.ID, &acc.CreatedAt)
	if err != nil {
		_ = tx.Rollback(ctx)

		if isUniqueViolation(err) {
			return models.Account{}, storage.ErrAccountExists
		}

		return models.Account{}, fmt.Errorf("%s: failed to save account: %w", op, err)
	}

	if confirm != nil {
		if err := confirm(acc); err != nil {
			_ = tx.Rollback(ctx)

			return models.Account{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Account{}, fmt.Errorf("%s: failed to commit: %w", op, err)
	}

	return acc, nil
}

func (r *PostgresRepo) AccountByEmail(ctx context.Context, email string) (models.Account, error) {
	const op = "storage.postgres.AccountByEmail"

	query := `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE email = $1;
	`

	acc, err := scanAccount(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, storage.ErrAccountNotFound) {
			return models.Account{}, err
		}

		return models.Account{}, fmt.Errorf("%s: %w", op, err)
	}

	return acc, nil
}

func (r *PostgresRepo) AccountByID(ctx context.Context, id int64) (models.Account, error) {
	const op = "storage.postgres.AccountByID"

	query := `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE id = $1;
	`

	acc, err := scanAccount(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, storage.ErrAccountNotFound) {
			return models.Account{}, err
		}

		return models.Account{}, fmt.Errorf("%s: %w", op, err)
	}

	return acc, nil
}

func (r *PostgresRepo) SaveSignIn(ctx context.Context, userID int64, email string, at time.Time) error {
	const op = "storage.postgres.SaveSignIn"

	const query = `
		INSERT INTO user_sign_in_details (user_id, email, signed_in_at)
		VALUES ($1, $2, $3)
	`

	if _, err := r.db.Exec(ctx, query, userID, email, at); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *PostgresRepo) Profile(ctx context.Context, userID int64) (models.Profile, error) {
	const op = "storage.postgres.Profile"

	query := `
		SELECT id, user_id, skills, interests, experience_level, education, preferred_industries, updated_at
		FROM user_profiles
		WHERE user_id = $1;
	`

	p, err := scanProfile(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, storage.ErrProfileNotFound) {
			return models.Profile{}, err
		}

		return models.Profile{}, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

func (r *PostgresRepo) SaveProfile(ctx context.Context, userID int64, f models.ProfileFields, now time.Time) (models.Profile, error) {
	const op = "storage.postgres.SaveProfile"

	query := `
		INSERT INTO user_profiles (user_id, skills, interests, experience_level, education, preferred_industries, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, user_id, skills, interests, experience_level, education, preferred_industries, updated_at;
	`

	p, err := scanProfile(r.db.QueryRow(ctx, query,
		userID, f.Skills, f.Interests, f.ExperienceLevel, f.Education, f.PreferredIndustries, now,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return models.Profile{}, storage.ErrProfileExists
		}

		return models.Profile{}, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

// UpdateProfile overwrites only the non-nil fields of f.
func (r *PostgresRepo) UpdateProfile(ctx context.Context, userID int64, f models.ProfileFields, now time.Time) (models.Profile, error) {
	const op = "storage.postgres.UpdateProfile"

	query := `
		UPDATE user_profiles
		SET skills = COALESCE($2, skills),
			interests = COALESCE($3, interests),
			experience_level = COALESCE($4, experience_level),
			education = COALESCE($5, education),
			preferred_industries = COALESCE($6, preferred_industries),
			updated_at = $7
		WHERE user_id = $1
		RETURNING id, user_id, skills, interests, experience_level, education, preferred_industries, updated_at;
	`

	p, err := scanProfile(r.db.QueryRow(ctx, query,
		userID, f.Skills, f.Interests, f.ExperienceLevel, f.Education, f.PreferredIndustries, now,
	))
	if err != nil {
		if errors.Is(err, storage.ErrProfileNotFound) {
			return models.Profile{}, err
		}

		return models.Profile{}, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

func (r *PostgresRepo) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *PostgresRepo) Close() {
	r.db.Close()
}

func scanAccount(row pgx.Row) (models.Account, error) {
	var acc models.Account

	err := row.Scan(
		&acc.ID,
		&acc.Name,
		&acc.Email,
		&acc.PassHash,
		&acc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Account{}, storage.ErrAccountNotFound
		}

		return models.Account{}, err
	}

	return acc, nil
}

func scanProfile(row pgx.Row) (models.Profile, error) {
	var p models.Profile

	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Skills,
		&p.Interests,
		&p.ExperienceLevel,
		&p.Education,
		&p.PreferredIndustries,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Profile{}, storage.ErrProfileNotFound
		}

		return models.Profile{}, err
	}

	return p, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
