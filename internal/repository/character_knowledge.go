package repository

import (
	"context"

	"github.com/lorekeeper-lab/backend/internal/entity"
	"github.com/lorekeeper-lab/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type CharacterKnowledgeRepository interface {
	// Upsert inserts the grant or, when one already exists for the same viewer, character and
	// field, replaces its level and notes.
	Upsert(ctx context.Context, data *entity.CharacterKnowledge) error
	Get(ctx context.Context, viewerID, characterID string, field entity.DisclosableField) (*entity.CharacterKnowledge, error)
	GetListByCharacterID(ctx context.Context, characterID string) ([]entity.CharacterKnowledge, error)
	GetAllowedFields(ctx context.Context, viewerID, characterID string) ([]entity.DisclosableField, error)
	Delete(ctx context.Context, viewerID, characterID string, field entity.DisclosableField) error
	DeleteByCharacterID(ctx context.Context, characterID string) error
}

type characterKnowledgeRepository struct{}

func NewCharacterKnowledgeRepository() CharacterKnowledgeRepository {
	return &characterKnowledgeRepository{}
}

func (r *characterKnowledgeRepository) Upsert(ctx context.Context, data *entity.CharacterKnowledge) error {
	return xcontext.DB(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "viewer_id"},
				{Name: "character_id"},
				{Name: "field"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"level", "notes", "updated_at"}),
		}).Create(data).Error
}

func (r *characterKnowledgeRepository) Get(
	ctx context.Context, viewerID, characterID string, field entity.DisclosableField,
) (*entity.CharacterKnowledge, error) {
	var result entity.CharacterKnowledge
	err := xcontext.DB(ctx).
		Where("viewer_id=? AND character_id=? AND field=?", viewerID, characterID, field).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *characterKnowledgeRepository) GetListByCharacterID(
	ctx context.Context, characterID string,
) ([]entity.CharacterKnowledge, error) {
	var result []entity.CharacterKnowledge
	err := xcontext.DB(ctx).
		Preload("Viewer").
		Where("character_id=?", characterID).
		Order("viewer_id, field").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *characterKnowledgeRepository) GetAllowedFields(
	ctx context.Context, viewerID, characterID string,
) ([]entity.DisclosableField, error) {
	var result []entity.DisclosableField
	err := xcontext.DB(ctx).
		Model(&entity.CharacterKnowledge{}).
		Where("viewer_id=? AND character_id=?", viewerID, characterID).
		Pluck("field", &result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *characterKnowledgeRepository) Delete(
	ctx context.Context, viewerID, characterID string, field entity.DisclosableField,
) error {
	return xcontext.DB(ctx).
		Where("viewer_id=? AND character_id=? AND field=?", viewerID, characterID, field).
		Delete(&entity.CharacterKnowledge{}).Error
}

func (r *characterKnowledgeRepository) DeleteByCharacterID(ctx context.Context, characterID string) error {
	return xcontext.DB(ctx).
		Where("character_id=?", characterID).
		Delete(&entity.CharacterKnowledge{}).Error
}
