package main

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/lorekeeper-lab/backend/config"
	"github.com/lorekeeper-lab/backend/internal/common"
	"github.com/lorekeeper-lab/backend/internal/domain"
	"github.com/lorekeeper-lab/backend/internal/repository"
	"github.com/lorekeeper-lab/backend/pkg/logger"
	"github.com/lorekeeper-lab/backend/pkg/router"
	"github.com/lorekeeper-lab/backend/pkg/token"
	"github.com/lorekeeper-lab/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	app *cli.App
	ctx context.Context

	idGenerator *snowflake.Node

	userRepo         repository.UserRepository
	campaignRepo     repository.CampaignRepository
	memberRepo       repository.CampaignMemberRepository
	characterRepo    repository.CharacterRepository
	knowledgeRepo    repository.CharacterKnowledgeRepository
	relationshipRepo repository.CharacterRelationshipRepository
	locationRepo     repository.LocationRepository
	skillRepo        repository.SkillRepository

	roleResolver *common.CampaignRoleResolver

	campaignDomain     domain.CampaignDomain
	characterDomain    domain.CharacterDomain
	knowledgeDomain    domain.KnowledgeDomain
	relationshipDomain domain.RelationshipDomain
	locationDomain     domain.LocationDomain
	skillDomain        domain.SkillDomain

	router *router.Router
}

func (s *srv) before(cctx *cli.Context) error {
	if err := s.loadConfig(cctx.String("config")); err != nil {
		return err
	}

	return s.loadLogger()
}

func (s *srv) after(*cli.Context) error {
	// Sync fails on some terminals, there is nothing to do about it.
	_ = xcontext.Logger(s.ctx).Sync()
	return nil
}

func (s *srv) loadConfig(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithConfigs(s.ctx, cfg)
	return nil
}

func (s *srv) loadLogger() error {
	cfg := xcontext.Configs(s.ctx)
	if cfg.Env == "local" {
		s.ctx = xcontext.WithLogger(s.ctx, logger.NewDevelopmentLogger())
		return nil
	}

	l, err := logger.NewLogger(cfg.Log.Level)
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithLogger(s.ctx, l)
	return nil
}

func (s *srv) newDatabase() (*gorm.DB, error) {
	cfg := xcontext.Configs(s.ctx).Database

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.ConnectionString())
	case "postgres":
		dialector = postgres.Open(cfg.ConnectionString())
	case "sqlite":
		dialector = sqlite.Open(cfg.ConnectionString())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)

	return db, nil
}

func (s *srv) loadDatabase() error {
	db, err := s.newDatabase()
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithDB(s.ctx, db)
	return nil
}

func (s *srv) loadTokenEngine() {
	cfg := xcontext.Configs(s.ctx).Auth
	s.ctx = xcontext.WithTokenEngine(s.ctx, token.NewEngine(cfg.TokenSecret, cfg.Issuer))
}

func (s *srv) loadIDGenerator() error {
	node, err := snowflake.NewNode(xcontext.Configs(s.ctx).ApiServer.NodeID)
	if err != nil {
		return err
	}

	s.idGenerator = node
	return nil
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.campaignRepo = repository.NewCampaignRepository()
	s.memberRepo = repository.NewCampaignMemberRepository()
	s.characterRepo = repository.NewCharacterRepository()
	s.knowledgeRepo = repository.NewCharacterKnowledgeRepository()
	s.relationshipRepo = repository.NewCharacterRelationshipRepository(s.idGenerator)
	s.locationRepo = repository.NewLocationRepository()
	s.skillRepo = repository.NewSkillRepository()
}

func (s *srv) loadDomains() {
	s.roleResolver = common.NewCampaignRoleResolver(s.userRepo, s.campaignRepo, s.memberRepo)

	s.campaignDomain = domain.NewCampaignDomain(s.campaignRepo, s.memberRepo, s.roleResolver, s.idGenerator)
	s.characterDomain = domain.NewCharacterDomain(s.characterRepo, s.knowledgeRepo, s.relationshipRepo,
		s.locationRepo, s.skillRepo, s.memberRepo, s.roleResolver)
	s.knowledgeDomain = domain.NewKnowledgeDomain(s.knowledgeRepo, s.characterRepo, s.userRepo, s.roleResolver)
	s.relationshipDomain = domain.NewRelationshipDomain(s.relationshipRepo, s.characterRepo, s.roleResolver)
	s.locationDomain = domain.NewLocationDomain(s.locationRepo, s.roleResolver)
	s.skillDomain = domain.NewSkillDomain(s.skillRepo)
}
