package testutil

import (
	"context"
	"database/sql"
	"time"

	"github.com/lorekeeper-lab/backend/internal/entity"
	"github.com/lorekeeper-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	UserAdmin = &entity.User{
		Base:     entity.Base{ID: "00000000-0000-4000-8000-000000000001"},
		Username: "admin",
		Email:    "admin@lorekeeper.test",
		Role:     entity.RoleAdmin,
	}
	UserMJ = &entity.User{
		Base:     entity.Base{ID: "00000000-0000-4000-8000-000000000002"},
		Username: "mj",
		Email:    "mj@lorekeeper.test",
		Role:     entity.RoleUser,
	}
	UserPlayer1 = &entity.User{
		Base:     entity.Base{ID: "00000000-0000-4000-8000-000000000003"},
		Username: "player1",
		Email:    "player1@lorekeeper.test",
		Role:     entity.RoleUser,
	}
	UserPlayer2 = &entity.User{
		Base:     entity.Base{ID: "00000000-0000-4000-8000-000000000004"},
		Username: "player2",
		Email:    "player2@lorekeeper.test",
		Role:     entity.RoleUser,
	}
	UserOutsider = &entity.User{
		Base:     entity.Base{ID: "00000000-0000-4000-8000-000000000005"},
		Username: "outsider",
		Email:    "outsider@lorekeeper.test",
		Role:     entity.RoleUser,
	}

	Users = []*entity.User{UserAdmin, UserMJ, UserPlayer1, UserPlayer2, UserOutsider}

	Campaign1 = &entity.Campaign{
		Base:      entity.Base{ID: "10000000-0000-4000-8000-000000000001"},
		Title:     "Les Terres Brisées",
		Theme:     "post-apocalyptic",
		JoinCode:  "JOINCODE1",
		CreatedBy: UserMJ.ID,
	}
	Campaign2 = &entity.Campaign{
		Base:      entity.Base{ID: "10000000-0000-4000-8000-000000000002"},
		Title:     "Another table",
		JoinCode:  "JOINCODE2",
		CreatedBy: UserOutsider.ID,
	}

	Campaigns = []*entity.Campaign{Campaign1, Campaign2}

	Members = []*entity.CampaignMember{
		{CampaignID: Campaign1.ID, UserID: UserMJ.ID, Role: entity.MemberRoleMJ},
		{CampaignID: Campaign1.ID, UserID: UserPlayer1.ID, Role: entity.MemberRolePlayer},
		{CampaignID: Campaign1.ID, UserID: UserPlayer2.ID, Role: entity.MemberRolePlayer},
		{CampaignID: Campaign2.ID, UserID: UserOutsider.ID, Role: entity.MemberRoleMJ},
	}

	Location1 = &entity.Location{
		Base:       entity.Base{ID: "20000000-0000-4000-8000-000000000001"},
		CampaignID: Campaign1.ID,
		Name:       "The Ark",
	}

	Locations = []*entity.Location{Location1}

	SkillFight = &entity.Skill{
		Base:            entity.Base{ID: "30000000-0000-4000-8000-000000000001"},
		Name:            "Fight",
		ParentAttribute: entity.AttributeStrength,
	}
	SkillSneak = &entity.Skill{
		Base:            entity.Base{ID: "30000000-0000-4000-8000-000000000002"},
		Name:            "Sneak",
		ParentAttribute: entity.AttributeAgility,
	}

	Skills = []*entity.Skill{SkillFight, SkillSneak}

	// CharacterA is the player character of UserPlayer1.
	CharacterA = &entity.Character{
		Base:       entity.Base{ID: "40000000-0000-4000-8000-000000000001", CreatedAt: time.Unix(1000, 0)},
		CampaignID: sql.NullString{Valid: true, String: Campaign1.ID},
		LocationID: sql.NullString{Valid: true, String: Location1.ID},
		OwnerID:    sql.NullString{Valid: true, String: UserPlayer1.ID},
		Firstname:  "Alma",
		Lastname:   "Vega",
		Nickname:   "Crow",
		Age:        27,
		Clan:       "Ravens",
		Biography:  "Born in the ruins.",
		Strengths:  "Quick hands.",
		Weaknesses: "Trusts nobody.",
		AvatarURL:  "https://cdn.lorekeeper.test/a.png",
		IsPlayer:   true,
	}
	// CharacterB is an NPC which carries an owner anyway, it must never be disclosed.
	CharacterB = &entity.Character{
		Base:       entity.Base{ID: "40000000-0000-4000-8000-000000000002", CreatedAt: time.Unix(2000, 0)},
		CampaignID: sql.NullString{Valid: true, String: Campaign1.ID},
		OwnerID:    sql.NullString{Valid: true, String: UserMJ.ID},
		Firstname:  "Boris",
		Nickname:   "The Boss",
		Age:        54,
		Biography:  "Runs the Ark.",
		Strengths:  "Feared.",
		Weaknesses: "Greedy.",
	}
	CharacterC = &entity.Character{
		Base:       entity.Base{ID: "40000000-0000-4000-8000-000000000003", CreatedAt: time.Unix(3000, 0)},
		CampaignID: sql.NullString{Valid: true, String: Campaign1.ID},
		Firstname:  "Cassia",
		Nickname:   "Doc",
		Age:        40,
	}
	CharacterTrashed = &entity.Character{
		Base:       entity.Base{ID: "40000000-0000-4000-8000-000000000004", CreatedAt: time.Unix(4000, 0)},
		CampaignID: sql.NullString{Valid: true, String: Campaign1.ID},
		Firstname:  "Dead",
		Nickname:   "Ghost",
	}
	CharacterOther = &entity.Character{
		Base:       entity.Base{ID: "40000000-0000-4000-8000-000000000005", CreatedAt: time.Unix(5000, 0)},
		CampaignID: sql.NullString{Valid: true, String: Campaign2.ID},
		Firstname:  "Elsewhere",
	}

	Characters = []*entity.Character{CharacterA, CharacterB, CharacterC, CharacterTrashed, CharacterOther}

	AttributesA = &entity.CharacterAttributes{
		CharacterID: CharacterA.ID,
		Strength:    3,
		Agility:     4,
		Wits:        2,
		Empathy:     3,
	}

	SkillValuesA = []*entity.CharacterSkillValue{
		{CharacterID: CharacterA.ID, SkillID: SkillFight.ID, Level: 2},
		{CharacterID: CharacterA.ID, SkillID: SkillSneak.ID, Level: 3},
	}

	// KnowledgePlayer2A lets UserPlayer2 read the biography of CharacterA.
	KnowledgePlayer2A = &entity.CharacterKnowledge{
		ViewerID:    UserPlayer2.ID,
		CharacterID: CharacterA.ID,
		Field:       entity.FieldBiography,
		Level:       entity.KnowledgeHint,
	}

	// RelationshipCA is a one-way edge C -> A.
	RelationshipCA = &entity.CharacterRelationship{
		SnowFlakeBase:   entity.SnowFlakeBase{ID: 1},
		FromCharacterID: CharacterC.ID,
		ToCharacterID:   CharacterA.ID,
		Type:            entity.RelationshipEnemy,
		AffinityScore:   70,
	}
)

func CreateFixtureDb(ctx context.Context) {
	db := xcontext.DB(ctx).Omit(clause.Associations).Session(&gorm.Session{})

	insert(db, Users)
	insert(db, Campaigns)
	insert(db, Members)
	insert(db, Locations)
	insert(db, Skills)
	insert(db, Characters)
	insert(db, []*entity.CharacterAttributes{AttributesA})
	insert(db, SkillValuesA)
	insert(db, []*entity.CharacterKnowledge{KnowledgePlayer2A})
	insert(db, []*entity.CharacterRelationship{RelationshipCA})

	if err := db.Delete(&entity.Character{}, "id=?", CharacterTrashed.ID).Error; err != nil {
		panic(err)
	}
}

func insert[T any](db *gorm.DB, rows []*T) {
	for _, row := range rows {
		// Copy, so the package level fixtures keep their zero timestamps between tests.
		data := *row
		if err := db.Create(&data).Error; err != nil {
			panic(err)
		}
	}
}
