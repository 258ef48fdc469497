package common

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lorekeeper-lab/backend/internal/entity"
	"github.com/lorekeeper-lab/backend/internal/repository"
	"github.com/lorekeeper-lab/backend/pkg/errorx"
	"github.com/lorekeeper-lab/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// Role is the effective role of a user inside one campaign.
type Role int

const (
	RoleNone Role = iota
	RoleAdmin
	RoleOwner
	RolePlayer
)

var (
	// AdminOrOwner may read and write everything in a campaign.
	AdminOrOwner = []Role{RoleAdmin, RoleOwner}
	// AnyMember additionally lets players in.
	AnyMember = []Role{RoleAdmin, RoleOwner, RolePlayer}
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleOwner:
		return "owner"
	case RolePlayer:
		return "player"
	default:
		return "none"
	}
}

// CanSeeEverything is true for the roles which bypass knowledge grants.
func (r Role) CanSeeEverything() bool {
	return r == RoleAdmin || r == RoleOwner
}

type CampaignRoleResolver struct {
	userRepo     repository.UserRepository
	campaignRepo repository.CampaignRepository
	memberRepo   repository.CampaignMemberRepository
}

func NewCampaignRoleResolver(
	userRepo repository.UserRepository,
	campaignRepo repository.CampaignRepository,
	memberRepo repository.CampaignMemberRepository,
) *CampaignRoleResolver {
	return &CampaignRoleResolver{userRepo: userRepo, campaignRepo: campaignRepo, memberRepo: memberRepo}
}

// RoleFor reads the current state on every call, roles are never cached.
func (resolver *CampaignRoleResolver) RoleFor(ctx context.Context, userID, campaignID string) (Role, error) {
	user, err := resolver.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RoleNone, nil
		}

		return RoleNone, err
	}

	if user.Role == entity.RoleAdmin {
		return RoleAdmin, nil
	}

	member, err := resolver.memberRepo.Get(ctx, campaignID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RoleNone, nil
		}

		return RoleNone, err
	}

	switch member.Role {
	case entity.MemberRoleMJ:
		return RoleOwner, nil
	case entity.MemberRolePlayer:
		return RolePlayer, nil
	default:
		return RoleNone, nil
	}
}

// Require resolves the role of the request user and fails unless it is one of allowed. The
// principal is checked first, then the campaign id, then the role. The returned error is
// already an errorx.Error. Admins hold no membership, so the campaign itself must exist for
// them to pass.
func (resolver *CampaignRoleResolver) Require(ctx context.Context, campaignID string, allowed ...Role) (Role, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return RoleNone, errorx.New(errorx.Unauthenticated, "Unauthenticated")
	}

	if _, err := uuid.Parse(campaignID); err != nil {
		return RoleNone, errorx.New(errorx.BadRequest, "Invalid campaign_id")
	}

	role, err := resolver.RoleFor(ctx, userID, campaignID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot resolve role of user %s in campaign %s: %v", userID, campaignID, err)
		return RoleNone, errorx.Unknown
	}

	if role == RoleNone || !slices.Contains(allowed, role) {
		xcontext.Logger(ctx).Debugf("Permission denied: user %s has role %s in campaign %s", userID, role, campaignID)
		PromCounters[PermissionDeniedTotal].WithLabelValues(role.String()).Inc()
		if slices.Contains(allowed, RolePlayer) {
			return RoleNone, errorx.New(errorx.PermissionDenied, "Campaign members only")
		}

		return RoleNone, errorx.New(errorx.PermissionDenied, "Admin/MJ only")
	}

	if role == RoleAdmin {
		if _, err := resolver.campaignRepo.GetByID(ctx, campaignID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return RoleNone, errorx.New(errorx.NotFound, "Campaign not found")
			}

			xcontext.Logger(ctx).Errorf("Cannot get campaign %s: %v", campaignID, err)
			return RoleNone, errorx.Unknown
		}
	}

	return role, nil
}
