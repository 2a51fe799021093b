package repository

import (
	"context"
	"time"

	"github.com/TanerSahin19/GriWear/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AuthRepository struct {
	DB *pgxpool.Pool
}

func NewAuthRepository(db *pgxpool.Pool) *AuthRepository {
	return &AuthRepository{DB: db}
}

func (r *AuthRepository) CreateUser(ctx context.Context, username, email, passwordHash, role string) (int64, error) {
	var id int64
	query := `INSERT INTO users (username, email, passwordhash, role, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING userid`
	if err := r.DB.QueryRow(ctx, query, username, email, passwordHash, role, time.Now()).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *AuthRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	query := `SELECT userid, username, email, passwordhash, role, created_at FROM users WHERE username=$1`
	if err := r.DB.QueryRow(ctx, query, username).Scan(&u.UserID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *AuthRepository) GetByID(ctx context.Context, userID int64) (*model.User, error) {
	var u model.User
	query := `SELECT userid, username, email, passwordhash, role, created_at FROM users WHERE userid=$1`
	if err := r.DB.QueryRow(ctx, query, userID).Scan(&u.UserID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *AuthRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE username=$1)`
	if err := r.DB.QueryRow(ctx, query, username).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
