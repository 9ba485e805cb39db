package repository

import (
	"context"
	"errors"

	"github.com/Anaselll/TeachMeApp/pkg/domain"
	"github.com/Anaselll/TeachMeApp/pkg/domain/offer"
	"github.com/Anaselll/TeachMeApp/pkg/infra/database/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type offerRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) offer.Repository {
	return &offerRepository{db: db}
}

func (r *offerRepository) GetByID(ctx context.Context, id uuid.UUID) (*offer.Offer, error) {
	var o offer.Offer
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("offer", id)
		}
		return nil, err
	}
	return &o, nil
}

func (r *offerRepository) ListOpen(ctx context.Context) ([]*offer.Offer, error) {
	var offers []*offer.Offer
	if err := r.db.WithContext(ctx).
		Where("status = ?", offer.StatusOpen).
		Order("date ASC, created_at ASC").
		Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}

func (r *offerRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*offer.Offer, error) {
	unique := types.Unique(ids)
	if len(unique) == 0 {
		return []*offer.Offer{}, nil
	}
	var offers []*offer.Offer
	if err := r.db.WithContext(ctx).
		Where("id = ANY(?)", unique).
		Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}
