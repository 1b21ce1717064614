package userinfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jobpulse/jobpulse/board/user"
	"github.com/jobpulse/jobpulse/pkg/iam/auth"
	"github.com/jobpulse/jobpulse/pkg/kernel"
	"github.com/lib/pq"
)

// PostgresUserRepository implements user.Repository using PostgreSQL
type PostgresUserRepository struct {
	db *sqlx.DB
}

// NewPostgresUserRepository creates a new PostgreSQL user repository
func NewPostgresUserRepository(db *sqlx.DB) *PostgresUserRepository {
	return &PostgresUserRepository{
		db: db,
	}
}

type userModel struct {
	ID           string         `db:"id"`
	Email        string         `db:"email"`
	PasswordHash string         `db:"password"`
	FullName     string         `db:"full_name"`
	Role         string         `db:"role"`
	Phone        sql.NullString `db:"phone"`
	CompanyName  sql.NullString `db:"company_name"`
	IsActive     bool           `db:"is_active"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (m *userModel) toEntity() user.User {
	return user.User{
		ID:           kernel.UserID(m.ID),
		Email:        kernel.Email(m.Email),
		PasswordHash: m.PasswordHash,
		FullName:     m.FullName,
		Role:         auth.Role(m.Role),
		Phone:        m.Phone.String,
		CompanyName:  m.CompanyName.String,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

const userColumns = `
	id, email, password, full_name, role, phone, company_name, is_active,
	created_at, updated_at
`

// Create inserts a new user
func (r *PostgresUserRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (
			id, email, password, full_name, role, phone, company_name,
			is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		string(u.ID),
		string(u.Email),
		u.PasswordHash,
		u.FullName,
		string(u.Role),
		nullableString(u.Phone),
		nullableString(u.CompanyName),
		u.IsActive,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
			return user.ErrEmailTaken()
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id kernel.UserID) (*user.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	var model userModel
	if err := r.db.GetContext(ctx, &model, query, string(id)); err != nil {
		if err == sql.ErrNoRows {
			return nil, user.ErrUserNotFound()
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	entity := model.toEntity()
	return &entity, nil
}

// GetByEmail retrieves a user by email, hash included, for login
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email kernel.Email) (*user.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)

	var model userModel
	if err := r.db.GetContext(ctx, &model, query, string(email)); err != nil {
		if err == sql.ErrNoRows {
			return nil, user.ErrUserNotFound()
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	entity := model.toEntity()
	return &entity, nil
}

// UpdateProfile applies a partial profile update
func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, id kernel.UserID, update user.UpdateProfileRequest) (*user.User, error) {
	sets := []string{}
	args := []any{}

	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.FullName != nil {
		addSet("full_name", *update.FullName)
	}
	if update.Phone != nil {
		addSet("phone", nullableString(*update.Phone))
	}
	if update.CompanyName != nil {
		addSet("company_name", nullableString(*update.CompanyName))
	}

	if len(sets) == 0 {
		return nil, user.ErrValidationFailed().WithDetail("reason", "no fields to update")
	}

	addSet("updated_at", time.Now())
	args = append(args, string(id))

	query := fmt.Sprintf(`
		UPDATE users SET %s
		WHERE id = $%d
		RETURNING %s
	`, joinSets(sets), len(args), userColumns)

	var model userModel
	if err := r.db.GetContext(ctx, &model, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return nil, user.ErrUserNotFound()
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	entity := model.toEntity()
	return &entity, nil
}

func joinSets(sets []string) string {
	out := sets[0]
	for i := 1; i < len(sets); i++ {
		out += ", " + sets[i]
	}
	return out
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
