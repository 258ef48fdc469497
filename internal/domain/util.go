package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lorekeeper-lab/backend/internal/entity"
	"github.com/lorekeeper-lab/backend/internal/repository"
	"github.com/lorekeeper-lab/backend/pkg/errorx"
	"github.com/lorekeeper-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// requireUser is used by operations which are not scoped to a campaign.
func requireUser(ctx context.Context) (string, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return "", errorx.New(errorx.Unauthenticated, "Unauthenticated")
	}

	return userID, nil
}

func validateID(field, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errorx.New(errorx.BadRequest, "Invalid %s", field)
	}

	return nil
}

// getCampaignCharacter returns an active character only if it belongs to the campaign, a
// character of another campaign is reported as missing.
func getCampaignCharacter(
	ctx context.Context,
	characterRepo repository.CharacterRepository,
	campaignID, characterID string,
) (*entity.Character, error) {
	character, err := characterRepo.GetActiveByID(ctx, characterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Character not found")
		}

		xcontext.Logger(ctx).Errorf("Cannot get character %s: %v", characterID, err)
		return nil, errorx.Unknown
	}

	if character.CampaignID.String != campaignID {
		return nil, errorx.New(errorx.NotFound, "Character not found")
	}

	return character, nil
}
