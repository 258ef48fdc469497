package domain

import (
	"context"

	"github.com/lorekeeper-lab/backend/internal/model"
	"github.com/lorekeeper-lab/backend/internal/repository"
	"github.com/lorekeeper-lab/backend/pkg/errorx"
	"github.com/lorekeeper-lab/backend/pkg/xcontext"
)

type SkillDomain interface {
	GetAll(context.Context, *model.GetSkillsRequest) (*model.GetSkillsResponse, error)
}

type skillDomain struct {
	skillRepo repository.SkillRepository
}

func NewSkillDomain(skillRepo repository.SkillRepository) SkillDomain {
	return &skillDomain{skillRepo: skillRepo}
}

func (d *skillDomain) GetAll(ctx context.Context, req *model.GetSkillsRequest) (*model.GetSkillsResponse, error) {
	if _, err := requireUser(ctx); err != nil {
		return nil, err
	}

	skills, err := d.skillRepo.GetAll(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get skills: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Skill{}
	for i := range skills {
		result = append(result, convertSkill(&skills[i]))
	}

	return &model.GetSkillsResponse{Skills: result}, nil
}
