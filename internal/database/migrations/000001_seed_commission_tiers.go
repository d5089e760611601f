package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func seedCommissionTiersMigration() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000001_seed_commission_tiers",
		Migrate: func(tx *gorm.DB) error {
			// Bands are contiguous half-open [min, max) in quarterly yen.
			// The top tier has no upper bound.
			return tx.Exec(`
				INSERT INTO commission_tiers (code, rank, min_revenue, max_revenue, rate) VALUES
					('bronze',  1, 0,        1000000,  5),
					('silver',  2, 1000000,  3000000,  8),
					('gold',    3, 3000000,  10000000, 10),
					('diamond', 4, 10000000, NULL,     12)
				ON CONFLICT (code) DO NOTHING;
			`).Error
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec("DELETE FROM commission_tiers").Error
		},
	}
}

func init() {
	migrationsList = append(migrationsList, seedCommissionTiersMigration())
}
