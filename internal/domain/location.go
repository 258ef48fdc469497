package domain

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/lorekeeper-lab/backend/internal/common"
	"github.com/lorekeeper-lab/backend/internal/entity"
	"github.com/lorekeeper-lab/backend/internal/model"
	"github.com/lorekeeper-lab/backend/internal/repository"
	"github.com/lorekeeper-lab/backend/pkg/errorx"
	"github.com/lorekeeper-lab/backend/pkg/xcontext"
)

type LocationDomain interface {
	Create(context.Context, *model.CreateLocationRequest) (*model.CreateLocationResponse, error)
	GetList(context.Context, *model.GetLocationsRequest) (*model.GetLocationsResponse, error)
}

type locationDomain struct {
	locationRepo repository.LocationRepository
	roleResolver *common.CampaignRoleResolver
}

func NewLocationDomain(
	locationRepo repository.LocationRepository,
	roleResolver *common.CampaignRoleResolver,
) LocationDomain {
	return &locationDomain{
		locationRepo: locationRepo,
		roleResolver: roleResolver,
	}
}

func (d *locationDomain) Create(
	ctx context.Context, req *model.CreateLocationRequest,
) (*model.CreateLocationResponse, error) {
	if _, err := d.roleResolver.Require(ctx, req.CampaignID, common.AdminOrOwner...); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errorx.New(errorx.BadRequest, "Required name")
	}

	location := &entity.Location{
		Base:        entity.Base{ID: uuid.NewString()},
		CampaignID:  req.CampaignID,
		Name:        name,
		Description: req.Description,
	}
	if err := d.locationRepo.Create(ctx, location); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create location: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateLocationResponse{ID: location.ID}, nil
}

func (d *locationDomain) GetList(
	ctx context.Context, req *model.GetLocationsRequest,
) (*model.GetLocationsResponse, error) {
	if _, err := d.roleResolver.Require(ctx, req.CampaignID, common.AnyMember...); err != nil {
		return nil, err
	}

	locations, err := d.locationRepo.GetListByCampaignID(ctx, req.CampaignID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get locations: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Location{}
	for i := range locations {
		result = append(result, convertLocation(&locations[i]))
	}

	return &model.GetLocationsResponse{Locations: result}, nil
}
