package repository

import (
	"context"

	"github.com/lorekeeper-lab/backend/internal/entity"
	"github.com/lorekeeper-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CharacterRepository interface {
	Create(ctx context.Context, data *entity.Character) error
	// GetActiveByID ignores characters in the trash.
	GetActiveByID(ctx context.Context, id string) (*entity.Character, error)
	GetActiveListByCampaignID(ctx context.Context, campaignID string) ([]entity.Character, error)
	GetTrashedByID(ctx context.Context, id string) (*entity.Character, error)
	GetTrashedListByCampaignID(ctx context.Context, campaignID string) ([]entity.Character, error)
	UpdateByID(ctx context.Context, id string, data map[string]any) error
	UpsertAttributes(ctx context.Context, data *entity.CharacterAttributes) error
	UpsertSkillValues(ctx context.Context, data []entity.CharacterSkillValue) error
	Trash(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	// Destroy removes the character row together with the attributes and skill values it owns.
	Destroy(ctx context.Context, id string) error
}

type characterRepository struct{}

func NewCharacterRepository() CharacterRepository {
	return &characterRepository{}
}

func (r *characterRepository) Create(ctx context.Context, data *entity.Character) error {
	return xcontext.DB(ctx).Omit(clause.Associations).Create(data).Error
}

func (r *characterRepository) withDetails(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Owner").
		Preload("Location").
		Preload("Attributes").
		Preload("Skills", func(db *gorm.DB) *gorm.DB {
			return db.Order("skill_id")
		}).
		Preload("Skills.Skill")
}

func (r *characterRepository) GetActiveByID(ctx context.Context, id string) (*entity.Character, error) {
	var result entity.Character
	if err := r.withDetails(xcontext.DB(ctx)).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *characterRepository) GetActiveListByCampaignID(ctx context.Context, campaignID string) ([]entity.Character, error) {
	var result []entity.Character
	err := xcontext.DB(ctx).
		Where("campaign_id=?", campaignID).
		Order("created_at ASC, id ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *characterRepository) GetTrashedByID(ctx context.Context, id string) (*entity.Character, error) {
	var result entity.Character
	err := xcontext.DB(ctx).Unscoped().
		Where("id=? AND deleted_at IS NOT NULL", id).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *characterRepository) GetTrashedListByCampaignID(ctx context.Context, campaignID string) ([]entity.Character, error) {
	var result []entity.Character
	err := xcontext.DB(ctx).Unscoped().
		Where("campaign_id=? AND deleted_at IS NOT NULL", campaignID).
		Order("deleted_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *characterRepository) UpdateByID(ctx context.Context, id string, data map[string]any) error {
	if len(data) == 0 {
		return nil
	}

	tx := xcontext.DB(ctx).
		Model(&entity.Character{}).
		Where("id=?", id).
		Updates(data)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *characterRepository) UpsertAttributes(ctx context.Context, data *entity.CharacterAttributes) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "character_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"strength", "agility", "wits", "empathy", "updated_at",
			}),
		}).Create(data).Error
}

func (r *characterRepository) UpsertSkillValues(ctx context.Context, data []entity.CharacterSkillValue) error {
	if len(data) == 0 {
		return nil
	}

	return xcontext.DB(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "character_id"},
				{Name: "skill_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"level", "updated_at"}),
		}).Create(&data).Error
}

func (r *characterRepository) Trash(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Delete(&entity.Character{}, "id=?", id)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *characterRepository) Restore(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Unscoped().
		Model(&entity.Character{}).
		Where("id=? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *characterRepository) Destroy(ctx context.Context, id string) error {
	db := xcontext.DB(ctx)
	if err := db.Delete(&entity.CharacterSkillValue{}, "character_id=?", id).Error; err != nil {
		return err
	}

	if err := db.Delete(&entity.CharacterAttributes{}, "character_id=?", id).Error; err != nil {
		return err
	}

	tx := db.Unscoped().Delete(&entity.Character{}, "id=?", id)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
