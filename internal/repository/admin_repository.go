package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/nexjob/nexjob-api/internal/models"
)

const adminColumns = `id, email, password_hash, full_name, role, active, last_login, created_at, updated_at`

// AdminRepository persists back-office users.
type AdminRepository struct {
	db *sqlx.DB
}

// NewAdminRepository constructs the repository.
func NewAdminRepository(db *sqlx.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// FindByEmail fetches an admin by email.
func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	query := fmt.Sprintf(`SELECT %s FROM admins WHERE email = $1`, adminColumns)
	var admin models.Admin
	if err := r.db.GetContext(ctx, &admin, query, email); err != nil {
		return nil, err
	}
	return &admin, nil
}

// FindByID fetches an admin by id.
func (r *AdminRepository) FindByID(ctx context.Context, id string) (*models.Admin, error) {
	query := fmt.Sprintf(`SELECT %s FROM admins WHERE id = $1`, adminColumns)
	var admin models.Admin
	if err := r.db.GetContext(ctx, &admin, query, id); err != nil {
		return nil, err
	}
	return &admin, nil
}

// UpdateLastLogin stamps the last successful login time.
func (r *AdminRepository) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	const query = `UPDATE admins SET last_login = $1, updated_at = $2 WHERE id = $3`
	if _, err := r.db.ExecContext(ctx, query, ts, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}
