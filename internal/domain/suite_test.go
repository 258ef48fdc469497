package domain

import (
	"github.com/lorekeeper-lab/backend/internal/common"
	"github.com/lorekeeper-lab/backend/internal/repository"
	"github.com/lorekeeper-lab/backend/pkg/testutil"
)

// missingCampaignID is a well-formed id which no fixture campaign uses.
const missingCampaignID = "99999999-0000-4000-8000-000000000000"

type testDomains struct {
	character    CharacterDomain
	knowledge    KnowledgeDomain
	relationship RelationshipDomain
	campaign     CampaignDomain
	location     LocationDomain
	skill        SkillDomain

	relationshipRepo repository.CharacterRelationshipRepository
	knowledgeRepo    repository.CharacterKnowledgeRepository
}

func newTestDomains() *testDomains {
	userRepo := repository.NewUserRepository()
	campaignRepo := repository.NewCampaignRepository()
	memberRepo := repository.NewCampaignMemberRepository()
	characterRepo := repository.NewCharacterRepository()
	knowledgeRepo := repository.NewCharacterKnowledgeRepository()
	relationshipRepo := repository.NewCharacterRelationshipRepository(testutil.IDGenerator())
	locationRepo := repository.NewLocationRepository()
	skillRepo := repository.NewSkillRepository()

	roleResolver := common.NewCampaignRoleResolver(userRepo, campaignRepo, memberRepo)

	return &testDomains{
		character: NewCharacterDomain(
			characterRepo, knowledgeRepo, relationshipRepo, locationRepo, skillRepo, memberRepo, roleResolver),
		knowledge:    NewKnowledgeDomain(knowledgeRepo, characterRepo, userRepo, roleResolver),
		relationship: NewRelationshipDomain(relationshipRepo, characterRepo, roleResolver),
		campaign:     NewCampaignDomain(campaignRepo, memberRepo, roleResolver, testutil.IDGenerator()),
		location:     NewLocationDomain(locationRepo, roleResolver),
		skill:        NewSkillDomain(skillRepo),

		relationshipRepo: relationshipRepo,
		knowledgeRepo:    knowledgeRepo,
	}
}
