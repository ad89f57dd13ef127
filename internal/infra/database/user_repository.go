package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rotisserie/eris"

	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/entity"
)

const uniqueViolation = "23505"

const userColumns = `id, name, email, mobile, password_hash, role, created_at, updated_at`

type UserRepository struct {
	DB Pool
}

func NewUserRepository(db Pool) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (id, name, email, mobile, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.DB.Exec(ctx, query,
		u.ID,
		u.Name,
		u.Email,
		u.Mobile,
		u.PasswordHash,
		u.Role,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return entity.ErrEmailAlreadyExists
		}
		return eris.Wrap(err, "users: create")
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	query := `UPDATE users SET name = $1, email = $2, mobile = $3, updated_at = $4 WHERE id = $5`
	tag, err := r.DB.Exec(ctx, query, u.Name, u.Email, u.Mobile, u.UpdatedAt, u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return entity.ErrEmailAlreadyExists
		}
		return eris.Wrap(err, "users: update")
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return eris.Wrap(err, "users: delete")
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// FindAgents returns the roster in creation order. Ties break on id so the
// order is stable between calls.
func (r *UserRepository) FindAgents(ctx context.Context) ([]entity.User, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY created_at, id`,
		entity.RoleAgent,
	)
	if err != nil {
		return nil, eris.Wrap(err, "users: find agents")
	}
	defer rows.Close()

	var agents []entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		agents = append(agents, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "users: iterate agents")
	}
	return agents, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Mobile,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrUserNotFound
		}
		return nil, eris.Wrap(err, "users: scan")
	}
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
