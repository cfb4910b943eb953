package repository

import (
	"context"
	"errors"

	"healthsystem/internal/domain/entity"
	domainRepo "healthsystem/internal/domain/repository"
	"healthsystem/internal/infrastructure/database"
)

const (
	// userColumns omits password_hash, which only the login path may read.
	userColumns     = `user_id, email, user_type, reference_id, is_active, last_login, created_at`
	userAuthColumns = userColumns + `, password_hash`
)

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, q database.Querier, user *entity.User) error {
	res, err := q.Execute(ctx, `
		INSERT INTO user_account (email, password_hash, user_type, reference_id, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING user_id`,
		user.Email, user.PasswordHash, string(user.Role), user.ReferenceID, user.IsActive)
	if err != nil {
		return err
	}
	user.ID = res.InsertID
	return nil
}

func (r *userRepository) FindByEmail(ctx context.Context, q database.Querier, email string) (*entity.User, error) {
	return r.findOne(ctx, q, `SELECT `+userAuthColumns+` FROM user_account WHERE email = $1`, email)
}

func (r *userRepository) FindByID(ctx context.Context, q database.Querier, id int64) (*entity.User, error) {
	return r.findOne(ctx, q, `SELECT `+userColumns+` FROM user_account WHERE user_id = $1`, id)
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, q database.Querier, id int64) error {
	_, err := q.Execute(ctx, `UPDATE user_account SET last_login = NOW() WHERE user_id = $1`, id)
	return err
}

func (r *userRepository) findOne(ctx context.Context, q database.Querier, sql string, arg any) (*entity.User, error) {
	row, err := q.QueryOne(ctx, sql, arg)
	if err != nil {
		if errors.Is(err, database.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return toUser(row), nil
}

func toUser(row database.Row) *entity.User {
	user := &entity.User{
		ID:           row.Int64("user_id"),
		Email:        row.String("email"),
		PasswordHash: row.String("password_hash"),
		Role:         entity.Role(row.String("user_type")),
		ReferenceID:  row.OptionalInt64("reference_id"),
		IsActive:     row.Bool("is_active"),
		LastLogin:    row.Time("last_login"),
	}
	if created := row.Time("created_at"); created != nil {
		user.CreatedAt = *created
	}
	return user
}
