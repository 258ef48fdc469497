package entity

import (
	"context"

	"github.com/lorekeeper-lab/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&Campaign{},
		&CampaignMember{},
		&Location{},
		&Skill{},
		&Character{},
		&CharacterAttributes{},
		&CharacterSkillValue{},
		&CharacterKnowledge{},
		&CharacterRelationship{},
		&Migration{},
	)
}
