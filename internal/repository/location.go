package repository

import (
	"context"

	"github.com/lorekeeper-lab/backend/internal/entity"
	"github.com/lorekeeper-lab/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type LocationRepository interface {
	Create(ctx context.Context, data *entity.Location) error
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	GetListByCampaignID(ctx context.Context, campaignID string) ([]entity.Location, error)
}

type locationRepository struct{}

func NewLocationRepository() LocationRepository {
	return &locationRepository{}
}

func (r *locationRepository) Create(ctx context.Context, data *entity.Location) error {
	return xcontext.DB(ctx).Omit(clause.Associations).Create(data).Error
}

func (r *locationRepository) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	var result entity.Location
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *locationRepository) GetListByCampaignID(ctx context.Context, campaignID string) ([]entity.Location, error) {
	var result []entity.Location
	err := xcontext.DB(ctx).
		Where("campaign_id=?", campaignID).
		Order("name ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
