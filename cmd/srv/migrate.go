package main

import (
	"github.com/lorekeeper-lab/backend/migration"
	"github.com/lorekeeper-lab/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(cctx *cli.Context) error {
	if err := s.loadDatabase(); err != nil {
		return err
	}

	if err := migration.AutoMigrate(s.ctx); err != nil {
		return err
	}

	version := cctx.String("version")
	if version == "" {
		xcontext.Logger(s.ctx).Infof("Automigration done")
		return nil
	}

	applied, err := migration.Migrate(s.ctx, version)
	if err != nil {
		return err
	}

	if applied {
		xcontext.Logger(s.ctx).Infof("Migration %s applied", version)
	}

	return nil
}
