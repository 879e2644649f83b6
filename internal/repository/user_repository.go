package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/mviller/propnest/internal/model"
)

// UserRepo persists user records.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user with a fresh UUID and returns the stored
// record. The caller supplies an already-hashed password; plaintext
// never reaches this layer. A duplicate email maps to ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, email, name, passwordHash, role string, phone *string) (model.User, error) {
	u := model.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Name:         name,
		PasswordHash: passwordHash,
		Role:         role,
		Phone:        phone,
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (id, email, name, password_hash, role, phone) VALUES (?,?,?,?,?,?)",
		u.ID, u.Email, u.Name, u.PasswordHash, u.Role, u.Phone)
	if err != nil {
		// MySQL 1062 = duplicate key on the unique email index.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return model.User{}, ErrEmailExists
		}
		return model.User{}, err
	}
	return r.GetByID(ctx, u.ID)
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.getOne(ctx,
		"SELECT id,email,name,password_hash,role,phone,avatar,created_at,updated_at FROM users WHERE email=? LIMIT 1",
		email)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	return r.getOne(ctx,
		"SELECT id,email,name,password_hash,role,phone,avatar,created_at,updated_at FROM users WHERE id=? LIMIT 1",
		id)
}

func (r *UserRepo) getOne(ctx context.Context, query string, arg any) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role,
		&u.Phone, &u.Avatar, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}
