package main

import (
	"net/http"
	"time"

	"github.com/lorekeeper-lab/backend/internal/middleware"
	"github.com/lorekeeper-lab/backend/pkg/prometheus"
	"github.com/lorekeeper-lab/backend/pkg/router"
	"github.com/lorekeeper-lab/backend/pkg/xcontext"
	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	if err := s.loadDatabase(); err != nil {
		return err
	}

	if err := s.loadIDGenerator(); err != nil {
		return err
	}

	s.loadTokenEngine()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	cfg := xcontext.Configs(s.ctx).ApiServer
	httpSrv := &http.Server{
		Addr:              cfg.Address(),
		Handler:           s.router.Handler(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	xcontext.Logger(s.ctx).Infof("Starting server on port: %s", cfg.Port)
	if cfg.Cert != "" && cfg.Key != "" {
		return httpSrv.ListenAndServeTLS(cfg.Cert, cfg.Key)
	}

	return httpSrv.ListenAndServe()
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.Before(middleware.WithStartTime())
	s.router.AddCloser(middleware.Logger())
	s.router.AddCloser(middleware.Prometheus())

	metrics := []promclient.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	}
	if sqlDB, err := xcontext.DB(s.ctx).DB(); err == nil {
		metrics = append(metrics, collectors.NewDBStatsCollector(sqlDB, xcontext.Configs(s.ctx).Database.Database))
	}
	s.router.Handle(http.MethodGet, "/metrics", prometheus.NewHandler(metrics...))

	authRouter := s.router.Branch()
	authRouter.Before(middleware.NewAuthVerifier().WithAccessToken().Middleware())
	{
		// Campaign API
		router.GET(authRouter, "/getCampaign", s.campaignDomain.Get)
		router.GET(authRouter, "/getMyCampaigns", s.campaignDomain.GetMine)
		router.POST(authRouter, "/createCampaign", s.campaignDomain.Create)
		router.POST(authRouter, "/joinCampaign", s.campaignDomain.Join)

		// Location API
		router.GET(authRouter, "/getLocations", s.locationDomain.GetList)
		router.POST(authRouter, "/createLocation", s.locationDomain.Create)

		// Skill API
		router.GET(authRouter, "/getSkills", s.skillDomain.GetAll)

		// Character API
		router.GET(authRouter, "/getCharacter", s.characterDomain.Get)
		router.GET(authRouter, "/getCharacterCards", s.characterDomain.GetCards)
		router.GET(authRouter, "/getTrashedCharacters", s.characterDomain.GetTrashed)
		router.POST(authRouter, "/createCharacter", s.characterDomain.Create)
		router.POST(authRouter, "/updateCharacter", s.characterDomain.Update)
		router.POST(authRouter, "/trashCharacter", s.characterDomain.Trash)
		router.POST(authRouter, "/restoreCharacter", s.characterDomain.Restore)
		router.POST(authRouter, "/destroyCharacter", s.characterDomain.Destroy)

		// Knowledge API
		router.GET(authRouter, "/getCharacterKnowledge", s.knowledgeDomain.GetByCharacter)
		router.POST(authRouter, "/grantKnowledge", s.knowledgeDomain.Grant)
		router.POST(authRouter, "/revokeKnowledge", s.knowledgeDomain.Revoke)

		// Relationship API
		router.GET(authRouter, "/getKnownCharacters", s.relationshipDomain.GetKnown)
		router.GET(authRouter, "/getRelationshipCandidates", s.relationshipDomain.GetCandidates)
		router.POST(authRouter, "/addKnownCharacter", s.relationshipDomain.AddKnown)
		router.POST(authRouter, "/removeKnownCharacter", s.relationshipDomain.RemoveKnown)
		router.POST(authRouter, "/upsertRelationshipStars", s.relationshipDomain.UpsertStars)
	}
}
