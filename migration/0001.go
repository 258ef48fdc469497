package migration

import (
	"context"

	"github.com/google/uuid"
	"github.com/lorekeeper-lab/backend/internal/entity"
	"github.com/lorekeeper-lab/backend/internal/repository"
)

var skillCatalog = map[entity.Attribute][]string{
	entity.AttributeStrength: {"Endure", "Force", "Fight"},
	entity.AttributeAgility:  {"Sneak", "Move", "Shoot"},
	entity.AttributeWits:     {"Scout", "Comprehend", "Know the Zone"},
	entity.AttributeEmpathy:  {"Sense Emotion", "Manipulate", "Heal"},
}

// migrate0001 seeds the skill catalog.
func migrate0001(ctx context.Context) error {
	skillRepo := repository.NewSkillRepository()
	for attribute, names := range skillCatalog {
		for _, name := range names {
			skill := &entity.Skill{
				Base:            entity.Base{ID: uuid.NewString()},
				Name:            name,
				ParentAttribute: attribute,
			}

			if err := skillRepo.Upsert(ctx, skill); err != nil {
				return err
			}
		}
	}

	return nil
}
