package storage

import (
	"github.com/GiovanniPerreon/gacha-arena/internal/game"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) GetInventory(userID string) ([]game.OwnedUnit, error) {
	var units []game.OwnedUnit
	if err := r.db.Where("user_id = ?", userID).Order("id").Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

func (r *sqliteRepository) AddUnits(units []game.OwnedUnit) error {
	if len(units) == 0 {
		return nil
	}
	return r.db.Create(&units).Error
}

func (r *sqliteRepository) GetUnitByID(id uint) (*game.OwnedUnit, error) {
	var u game.OwnedUnit
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *sqliteRepository) UpdateUnit(u *game.OwnedUnit) error {
	return r.db.Save(u).Error
}

func (r *sqliteRepository) ClearInventory(userID string) error {
	// Unscoped so prestige removes the rows instead of soft-deleting them;
	// a wiped inventory should not resurrect through the deleted_at filter.
	return r.db.Unscoped().Where("user_id = ?", userID).Delete(&game.OwnedUnit{}).Error
}

func (r *sqliteRepository) AllInventories() (map[string][]game.OwnedUnit, error) {
	var units []game.OwnedUnit
	if err := r.db.Order("user_id").Order("id").Find(&units).Error; err != nil {
		return nil, err
	}
	out := make(map[string][]game.OwnedUnit)
	for _, u := range units {
		out[u.UserID] = append(out[u.UserID], u)
	}
	return out, nil
}

func (r *sqliteRepository) GetProfile(userID string) (*game.PlayerProfile, error) {
	var p game.PlayerProfile
	if err := r.db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			// Insert-or-ignore keyed by user_id so two concurrent first
			// accesses cannot double-grant the starting balance.
			p = game.PlayerProfile{UserID: userID, Points: game.StartingPoints}
			if createErr := r.db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}},
				DoNothing: true,
			}).Create(&p).Error; createErr != nil {
				return nil, createErr
			}
			if findErr := r.db.Where("user_id = ?", userID).First(&p).Error; findErr != nil {
				return nil, findErr
			}
			return &p, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *sqliteRepository) SaveProfile(p *game.PlayerProfile) error {
	return r.db.Save(p).Error
}

// GetTopProfiles returns the top N profiles ordered by prestige desc, then
// points desc.
func (r *sqliteRepository) GetTopProfiles(limit int) ([]game.PlayerProfile, error) {
	if limit <= 0 {
		limit = 10
	}
	var profiles []game.PlayerProfile
	if err := r.db.Model(&game.PlayerProfile{}).
		Order("prestige DESC").
		Order("points DESC").
		Limit(limit).
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *sqliteRepository) GetBank() (*game.Bank, error) {
	var b game.Bank
	if err := r.db.First(&b).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			b = game.Bank{Amount: 0}
			if createErr := r.db.Create(&b).Error; createErr != nil {
				return nil, createErr
			}
			return &b, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *sqliteRepository) SaveBank(b *game.Bank) error {
	return r.db.Save(b).Error
}

// GetBoss returns the most recent non-defeated boss, or (nil, nil) when no
// live boss exists (first boot, or the previous boss was just defeated).
func (r *sqliteRepository) GetBoss() (*game.BossRecord, error) {
	var b game.BossRecord
	if err := r.db.Where("defeated = ?", false).Order("id DESC").First(&b).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *sqliteRepository) SaveBoss(b *game.BossRecord) error {
	return r.db.Save(b).Error
}
