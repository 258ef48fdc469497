package migration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lorekeeper-lab/backend/internal/entity"
	"github.com/lorekeeper-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type Migrator func(ctx context.Context) error

// Migrators are applied at most once each, in any order. Versions must never be renamed.
var Migrators = map[string]Migrator{
	"0001": migrate0001,
}

// AutoMigrate creates or updates every table to the latest entity definitions.
func AutoMigrate(ctx context.Context) error {
	return entity.MigrateTable(ctx)
}

// Migrate runs the migrator of the given version unless it has already been applied. The
// migrator and its record are written in the same transaction.
func Migrate(ctx context.Context, version string) (bool, error) {
	migrator, ok := Migrators[version]
	if !ok {
		return false, fmt.Errorf("not found version %s", version)
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.RollbackDBTransaction(ctx)

	var applied entity.Migration
	err := xcontext.DB(ctx).Take(&applied, "version=?", version).Error
	if err == nil {
		xcontext.Logger(ctx).Infof("Migration %s was already applied at %s", version, applied.AppliedAt)
		return false, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	if err := migrator(ctx); err != nil {
		return false, err
	}

	record := &entity.Migration{Version: version, AppliedAt: time.Now()}
	if err := xcontext.DB(ctx).Create(record).Error; err != nil {
		return false, err
	}

	if err := xcontext.CommitDBTransaction(ctx); err != nil {
		return false, err
	}

	return true, nil
}
