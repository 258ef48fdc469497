package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lorekeeper-lab/backend/internal/entity"
	"github.com/lorekeeper-lab/backend/internal/model"
	"github.com/lorekeeper-lab/backend/internal/repository"
	"github.com/lorekeeper-lab/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCreateUser(cctx *cli.Context) error {
	if err := s.loadDatabase(); err != nil {
		return err
	}

	user, err := createUser(s.ctx, cctx.String("username"), cctx.String("email"), cctx.Bool("admin"))
	if err != nil {
		return err
	}

	fmt.Println(user.ID)
	return nil
}

func (s *srv) startGenerateToken(cctx *cli.Context) error {
	if err := s.loadDatabase(); err != nil {
		return err
	}
	s.loadTokenEngine()

	tkn, err := generateToken(s.ctx, cctx.String("user"))
	if err != nil {
		return err
	}

	fmt.Println(tkn)
	return nil
}

func createUser(ctx context.Context, username, email string, admin bool) (*entity.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}

	role := entity.RoleUser
	if admin {
		role = entity.RoleAdmin
	}

	user := &entity.User{
		Base:     entity.Base{ID: uuid.NewString()},
		Username: username,
		Email:    email,
		Role:     role,
	}

	if err := repository.NewUserRepository().Create(ctx, user); err != nil {
		return nil, fmt.Errorf("cannot create user %s: %w", username, err)
	}

	xcontext.Logger(ctx).Infof("Created user %s with role %s", user.Username, user.Role)
	return user, nil
}

// generateToken mints an access token for an existing user, valid for the configured duration.
func generateToken(ctx context.Context, userID string) (string, error) {
	user, err := repository.NewUserRepository().GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("cannot get user %s: %w", userID, err)
	}

	cfg := xcontext.Configs(ctx).Auth.AccessToken
	return xcontext.TokenEngine(ctx).Generate(cfg.Expiration, model.AccessToken{ID: user.ID})
}
