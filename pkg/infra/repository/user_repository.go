package repository

import (
	"context"
	"errors"

	"github.com/Anaselll/TeachMeApp/pkg/domain"
	"github.com/Anaselll/TeachMeApp/pkg/domain/user"
	"github.com/Anaselll/TeachMeApp/pkg/infra/database/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var u user.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("user", id)
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*user.User, error) {
	unique := types.Unique(ids)
	if len(unique) == 0 {
		return []*user.User{}, nil
	}
	var users []*user.User
	if err := r.db.WithContext(ctx).
		Where("id = ANY(?)", unique).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
