package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/lorekeeper-lab/backend/internal/entity"
	"github.com/lorekeeper-lab/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type CharacterRelationshipRepository interface {
	// Get looks the edge up in one direction only.
	Get(ctx context.Context, fromID, toID string) (*entity.CharacterRelationship, error)
	// GetOutgoing returns the edges leaving fromID whose target is still active, strongest
	// affinity first and insertion order among equal scores.
	GetOutgoing(ctx context.Context, fromID string) ([]entity.CharacterRelationship, error)
	// UpsertType creates the edge with a zero score, or only changes the type of an existing one.
	UpsertType(ctx context.Context, fromID, toID string, relType entity.RelationshipType) error
	// UpsertMutual applies UpsertType to both directions in a single transaction.
	UpsertMutual(ctx context.Context, aID, bID string, relType entity.RelationshipType) error
	// UpsertScore creates a neutral edge with the given score, or only changes the score of an
	// existing one.
	UpsertScore(ctx context.Context, fromID, toID string, score int) error
	Delete(ctx context.Context, fromID, toID string) error
	// DeleteByCharacterID removes every edge where the character is either end.
	DeleteByCharacterID(ctx context.Context, characterID string) error
}

type characterRelationshipRepository struct {
	idGenerator *snowflake.Node
}

func NewCharacterRelationshipRepository(idGenerator *snowflake.Node) CharacterRelationshipRepository {
	return &characterRelationshipRepository{idGenerator: idGenerator}
}

var relationshipEdgeColumns = []clause.Column{
	{Name: "from_character_id"},
	{Name: "to_character_id"},
}

func (r *characterRelationshipRepository) Get(
	ctx context.Context, fromID, toID string,
) (*entity.CharacterRelationship, error) {
	var result entity.CharacterRelationship
	err := xcontext.DB(ctx).
		Where("from_character_id=? AND to_character_id=?", fromID, toID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *characterRelationshipRepository) GetOutgoing(
	ctx context.Context, fromID string,
) ([]entity.CharacterRelationship, error) {
	var result []entity.CharacterRelationship
	activeCharacters := xcontext.DB(ctx).Model(&entity.Character{}).Select("id")
	err := xcontext.DB(ctx).
		Preload("ToCharacter").
		Where("from_character_id=? AND to_character_id IN (?)", fromID, activeCharacters).
		Order("affinity_score DESC, id ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *characterRelationshipRepository) newEdge(
	fromID, toID string, relType entity.RelationshipType, score int,
) *entity.CharacterRelationship {
	return &entity.CharacterRelationship{
		SnowFlakeBase:   entity.SnowFlakeBase{ID: r.idGenerator.Generate().Int64()},
		FromCharacterID: fromID,
		ToCharacterID:   toID,
		Type:            relType,
		AffinityScore:   entity.ClampAffinityScore(score),
	}
}

func (r *characterRelationshipRepository) UpsertType(
	ctx context.Context, fromID, toID string, relType entity.RelationshipType,
) error {
	return xcontext.DB(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   relationshipEdgeColumns,
			DoUpdates: clause.AssignmentColumns([]string{"type", "updated_at"}),
		}).Create(r.newEdge(fromID, toID, relType, entity.MinAffinityScore)).Error
}

func (r *characterRelationshipRepository) UpsertMutual(
	ctx context.Context, aID, bID string, relType entity.RelationshipType,
) error {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.RollbackDBTransaction(ctx)

	if err := r.UpsertType(ctx, aID, bID, relType); err != nil {
		return err
	}

	if err := r.UpsertType(ctx, bID, aID, relType); err != nil {
		return err
	}

	return xcontext.CommitDBTransaction(ctx)
}

func (r *characterRelationshipRepository) UpsertScore(
	ctx context.Context, fromID, toID string, score int,
) error {
	return xcontext.DB(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   relationshipEdgeColumns,
			DoUpdates: clause.AssignmentColumns([]string{"affinity_score", "updated_at"}),
		}).Create(r.newEdge(fromID, toID, entity.RelationshipNeutral, score)).Error
}

func (r *characterRelationshipRepository) Delete(ctx context.Context, fromID, toID string) error {
	return xcontext.DB(ctx).
		Where("from_character_id=? AND to_character_id=?", fromID, toID).
		Delete(&entity.CharacterRelationship{}).Error
}

func (r *characterRelationshipRepository) DeleteByCharacterID(ctx context.Context, characterID string) error {
	return xcontext.DB(ctx).
		Where("from_character_id=? OR to_character_id=?", characterID, characterID).
		Delete(&entity.CharacterRelationship{}).Error
}
