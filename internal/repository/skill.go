package repository

import (
	"context"

	"github.com/lorekeeper-lab/backend/internal/entity"
	"github.com/lorekeeper-lab/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type SkillRepository interface {
	GetAll(ctx context.Context) ([]entity.Skill, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Skill, error)
	Upsert(ctx context.Context, data *entity.Skill) error
}

type skillRepository struct{}

func NewSkillRepository() SkillRepository {
	return &skillRepository{}
}

func (r *skillRepository) GetAll(ctx context.Context) ([]entity.Skill, error) {
	var result []entity.Skill
	if err := xcontext.DB(ctx).Order("parent_attribute, name").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *skillRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Skill, error) {
	var result []entity.Skill
	if err := xcontext.DB(ctx).Where("id IN (?)", ids).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *skillRepository) Upsert(ctx context.Context, data *entity.Skill) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}},
			DoUpdates: clause.Assignments(map[string]any{
				"parent_attribute": data.ParentAttribute,
			}),
		}).Create(data).Error
}
