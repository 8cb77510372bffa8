package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jcastellanos/inventario-stock/internal/domain"
	"github.com/jcastellanos/inventario-stock/internal/domain/entity"
	"github.com/jcastellanos/inventario-stock/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository sobre PostgreSQL. Los grupos se
// guardan como text[] en la misma fila.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un usuario nuevo.
func (r *UserRepo) Create(user *entity.User) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO users (id, username, email, password_hash, groups, is_superuser, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Username, user.Email, user.PasswordHash,
		user.Groups, user.IsSuperuser, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	return r.getBy(`id = $1`, id)
}

// GetByUsername obtiene un usuario por su nombre único.
func (r *UserRepo) GetByUsername(username string) (*entity.User, error) {
	return r.getBy(`username = $1`, username)
}

func (r *UserRepo) getBy(where string, arg any) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(context.Background(), `
		SELECT id, username, email, password_hash, groups, is_superuser, created_at
		FROM users WHERE `+where, arg).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Groups, &u.IsSuperuser, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
