package entity

import "time"

// Migration records a versioned migrator which has already been applied.
type Migration struct {
	Version   string `gorm:"primaryKey"`
	AppliedAt time.Time
}
