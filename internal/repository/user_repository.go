package repository

import (
	"context"

	"job-board/internal/database"
	"job-board/internal/domain/user"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

const userColumns = `id, name, email, password, role, created_at`

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO "user" (id, name, email, password, role) VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Name, u.Email, u.PasswordHash, string(u.Role),
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return user.ErrEmailTaken
		}
		return errors.Wrap(err, "insert user")
	}
	return nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE id = $1`, id)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE email = $1`, email)
	return scanUser(row)
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM "user" WHERE email = $1)`, email)
	if err := row.Scan(&exists); err != nil {
		if database.IsNoRows(err) {
			return false, nil
		}
		return false, errors.Wrap(err, "check email")
	}
	return exists, nil
}

func (r *PostgresUserRepository) Update(ctx context.Context, id uuid.UUID, c user.Changes) error {
	var a assignments
	if c.Name != nil {
		a.set("name", *c.Name)
	}
	if c.Email != nil {
		a.set("email", *c.Email)
	}
	if c.PasswordHash != nil {
		a.set("password", *c.PasswordHash)
	}
	if a.empty() {
		return nil
	}

	q := `UPDATE "user" SET ` + a.clause() + ` WHERE id = ` + a.bind(id)
	if _, err := r.db.Exec(ctx, q, a.args...); err != nil {
		if database.IsUniqueViolation(err) {
			return user.ErrEmailTaken
		}
		return errors.Wrap(err, "update user")
	}
	return nil
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	var role string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.CreatedAt); err != nil {
		if database.IsNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "scan user")
	}
	u.Role = user.Role(role)
	return u, nil
}
