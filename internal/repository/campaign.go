package repository

import (
	"context"

	"github.com/lorekeeper-lab/backend/internal/entity"
	"github.com/lorekeeper-lab/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type CampaignRepository interface {
	Create(ctx context.Context, data *entity.Campaign) error
	GetByID(ctx context.Context, id string) (*entity.Campaign, error)
	GetByJoinCode(ctx context.Context, code string) (*entity.Campaign, error)
	GetListByUserID(ctx context.Context, userID string) ([]entity.Campaign, error)
}

type campaignRepository struct{}

func NewCampaignRepository() CampaignRepository {
	return &campaignRepository{}
}

func (r *campaignRepository) Create(ctx context.Context, data *entity.Campaign) error {
	return xcontext.DB(ctx).Omit(clause.Associations).Create(data).Error
}

func (r *campaignRepository) GetByID(ctx context.Context, id string) (*entity.Campaign, error) {
	var result entity.Campaign
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *campaignRepository) GetByJoinCode(ctx context.Context, code string) (*entity.Campaign, error) {
	var result entity.Campaign
	if err := xcontext.DB(ctx).Take(&result, "join_code=?", code).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *campaignRepository) GetListByUserID(ctx context.Context, userID string) ([]entity.Campaign, error) {
	var result []entity.Campaign
	err := xcontext.DB(ctx).
		Joins("join campaign_members on campaign_members.campaign_id=campaigns.id").
		Where("campaign_members.user_id=?", userID).
		Order("campaigns.created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

type CampaignMemberRepository interface {
	Get(ctx context.Context, campaignID, userID string) (*entity.CampaignMember, error)
	GetListByCampaignID(ctx context.Context, campaignID string) ([]entity.CampaignMember, error)
	Create(ctx context.Context, data *entity.CampaignMember) error
	// CreateIfNotExists keeps an existing membership untouched.
	CreateIfNotExists(ctx context.Context, data *entity.CampaignMember) error
}

type campaignMemberRepository struct{}

func NewCampaignMemberRepository() CampaignMemberRepository {
	return &campaignMemberRepository{}
}

func (r *campaignMemberRepository) Get(ctx context.Context, campaignID, userID string) (*entity.CampaignMember, error) {
	var result entity.CampaignMember
	err := xcontext.DB(ctx).
		Where("campaign_id=? AND user_id=?", campaignID, userID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *campaignMemberRepository) GetListByCampaignID(ctx context.Context, campaignID string) ([]entity.CampaignMember, error) {
	var result []entity.CampaignMember
	err := xcontext.DB(ctx).
		Preload("User").
		Where("campaign_id=?", campaignID).
		Order("created_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *campaignMemberRepository) Create(ctx context.Context, data *entity.CampaignMember) error {
	return xcontext.DB(ctx).Omit(clause.Associations).Create(data).Error
}

func (r *campaignMemberRepository) CreateIfNotExists(ctx context.Context, data *entity.CampaignMember) error {
	return xcontext.DB(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "campaign_id"},
				{Name: "user_id"},
			},
			DoNothing: true,
		}).Create(data).Error
}
