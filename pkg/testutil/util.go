package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/lorekeeper-lab/backend/config"
	"github.com/lorekeeper-lab/backend/internal/entity"
	"github.com/lorekeeper-lab/backend/pkg/logger"
	"github.com/lorekeeper-lab/backend/pkg/token"
	"github.com/lorekeeper-lab/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func MockConfigs() config.Configs {
	return config.Configs{
		Env: "test",
		Database: config.DatabaseConfigs{
			Driver: "sqlite",
			Path:   ":memory:",
		},
		ApiServer: config.ServerConfigs{
			Port: "8080",
		},
		Auth: config.AuthConfigs{
			TokenSecret: "secret",
			Issuer:      "lorekeeper",
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: time.Minute,
			},
		},
		Log: config.LogConfigs{
			Level: "debug",
		},
	}
}

// MockContext returns a context holding the test configs, a logger and a freshly migrated
// in-memory database.
func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic(err)
	}

	// Every new connection to ":memory:" is a new empty database.
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	cfg := MockConfigs()

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewNopLogger())
	ctx = xcontext.WithTokenEngine(ctx, token.NewEngine(cfg.Auth.TokenSecret, cfg.Auth.Issuer))
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(), userID)
}

// WithUserID switches the request user of an existing context, keeping its database.
func WithUserID(ctx context.Context, userID string) context.Context {
	return xcontext.WithRequestUserID(ctx, userID)
}

var (
	idGenerator     *snowflake.Node
	idGeneratorOnce sync.Once
)

// IDGenerator is shared by every test, two nodes with the same id could collide.
func IDGenerator() *snowflake.Node {
	idGeneratorOnce.Do(func() {
		node, err := snowflake.NewNode(1)
		if err != nil {
			panic(err)
		}

		idGenerator = node
	})

	return idGenerator
}
