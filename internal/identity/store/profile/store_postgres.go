package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ustudiopd/EventLive-sub001/internal/identity/models"
	id "github.com/ustudiopd/EventLive-sub001/pkg/domain"
	"github.com/ustudiopd/EventLive-sub001/pkg/platform/sentinel"
)

// PostgresStore persists profiles in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const uniqueViolation = "23505"

func (s *PostgresStore) Create(ctx context.Context, p *models.Profile) error {
	const query = `
		INSERT INTO profiles (id, email, display_name, is_super_admin, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(p.ID), p.Email, p.DisplayName, p.IsSuperAdmin, p.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, userID id.UserID) (*models.Profile, error) {
	const query = `
		SELECT id, email, display_name, is_super_admin, created_at
		FROM profiles WHERE id = $1
	`
	return s.scanOne(s.db.QueryRowContext(ctx, query, uuid.UUID(userID)))
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*models.Profile, error) {
	const query = `
		SELECT id, email, display_name, is_super_admin, created_at
		FROM profiles WHERE LOWER(email) = LOWER(TRIM($1))
	`
	return s.scanOne(s.db.QueryRowContext(ctx, query, email))
}

// SetSuperAdmin flips the super-admin flag. For seeding and tests.
func (s *PostgresStore) SetSuperAdmin(ctx context.Context, userID id.UserID, isSuperAdmin bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE profiles SET is_super_admin = $2 WHERE id = $1`,
		uuid.UUID(userID), isSuperAdmin)
	if err != nil {
		return fmt.Errorf("set super admin: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set super admin: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) scanOne(row *sql.Row) (*models.Profile, error) {
	var (
		p      models.Profile
		userID uuid.UUID
	)
	err := row.Scan(&userID, &p.Email, &p.DisplayName, &p.IsSuperAdmin, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	p.ID = id.UserID(userID)
	return &p, nil
}
