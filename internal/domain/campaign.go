package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/lorekeeper-lab/backend/internal/common"
	"github.com/lorekeeper-lab/backend/internal/entity"
	"github.com/lorekeeper-lab/backend/internal/model"
	"github.com/lorekeeper-lab/backend/internal/repository"
	"github.com/lorekeeper-lab/backend/pkg/errorx"
	"github.com/lorekeeper-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type CampaignDomain interface {
	Create(context.Context, *model.CreateCampaignRequest) (*model.CreateCampaignResponse, error)
	Join(context.Context, *model.JoinCampaignRequest) (*model.JoinCampaignResponse, error)
	Get(context.Context, *model.GetCampaignRequest) (*model.GetCampaignResponse, error)
	GetMine(context.Context, *model.GetMyCampaignsRequest) (*model.GetMyCampaignsResponse, error)
}

type campaignDomain struct {
	campaignRepo repository.CampaignRepository
	memberRepo   repository.CampaignMemberRepository
	roleResolver *common.CampaignRoleResolver
	idGenerator  *snowflake.Node
}

func NewCampaignDomain(
	campaignRepo repository.CampaignRepository,
	memberRepo repository.CampaignMemberRepository,
	roleResolver *common.CampaignRoleResolver,
	idGenerator *snowflake.Node,
) CampaignDomain {
	return &campaignDomain{
		campaignRepo: campaignRepo,
		memberRepo:   memberRepo,
		roleResolver: roleResolver,
		idGenerator:  idGenerator,
	}
}

// Create makes the caller the MJ of the new campaign. The join code is a base58 snowflake, so
// it is unique and never regenerated.
func (d *campaignDomain) Create(
	ctx context.Context, req *model.CreateCampaignRequest,
) (*model.CreateCampaignResponse, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, errorx.New(errorx.BadRequest, "Required title")
	}

	campaign := &entity.Campaign{
		Base:      entity.Base{ID: uuid.NewString()},
		Title:     title,
		Theme:     req.Theme,
		JoinCode:  d.idGenerator.Generate().Base58(),
		CreatedBy: userID,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.RollbackDBTransaction(ctx)

	if err := d.campaignRepo.Create(ctx, campaign); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create campaign: %v", err)
		return nil, errorx.Unknown
	}

	err = d.memberRepo.Create(ctx, &entity.CampaignMember{
		CampaignID: campaign.ID,
		UserID:     userID,
		Role:       entity.MemberRoleMJ,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create campaign owner: %v", err)
		return nil, errorx.Unknown
	}

	if err := xcontext.CommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit campaign creation: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateCampaignResponse{ID: campaign.ID, JoinCode: campaign.JoinCode}, nil
}

// Join adds the caller as a player. Joining twice keeps the existing role.
func (d *campaignDomain) Join(
	ctx context.Context, req *model.JoinCampaignRequest,
) (*model.JoinCampaignResponse, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	joinCode := strings.TrimSpace(req.JoinCode)
	if joinCode == "" {
		return nil, errorx.New(errorx.BadRequest, "Required join_code")
	}

	campaign, err := d.campaignRepo.GetByJoinCode(ctx, joinCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Campaign not found")
		}

		xcontext.Logger(ctx).Errorf("Cannot get campaign by join code: %v", err)
		return nil, errorx.Unknown
	}

	err = d.memberRepo.CreateIfNotExists(ctx, &entity.CampaignMember{
		CampaignID: campaign.ID,
		UserID:     userID,
		Role:       entity.MemberRolePlayer,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot join campaign: %v", err)
		return nil, errorx.Unknown
	}

	member, err := d.memberRepo.Get(ctx, campaign.ID, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get campaign member: %v", err)
		return nil, errorx.Unknown
	}

	return &model.JoinCampaignResponse{CampaignID: campaign.ID, Role: string(member.Role)}, nil
}

func (d *campaignDomain) Get(
	ctx context.Context, req *model.GetCampaignRequest,
) (*model.GetCampaignResponse, error) {
	if _, err := d.roleResolver.Require(ctx, req.CampaignID, common.AnyMember...); err != nil {
		return nil, err
	}

	campaign, err := d.campaignRepo.GetByID(ctx, req.CampaignID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Campaign not found")
		}

		xcontext.Logger(ctx).Errorf("Cannot get campaign: %v", err)
		return nil, errorx.Unknown
	}

	members, err := d.memberRepo.GetListByCampaignID(ctx, campaign.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get campaign members: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetCampaignResponse{Campaign: convertCampaign(campaign, members)}, nil
}

func (d *campaignDomain) GetMine(
	ctx context.Context, req *model.GetMyCampaignsRequest,
) (*model.GetMyCampaignsResponse, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	campaigns, err := d.campaignRepo.GetListByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get campaigns of user: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Campaign{}
	for i := range campaigns {
		result = append(result, convertCampaign(&campaigns[i], nil))
	}

	return &model.GetMyCampaignsResponse{Campaigns: result}, nil
}
