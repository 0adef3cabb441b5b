package game

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OwnedUnit is one summoned copy of a catalog unit in a user's inventory.
// Stats are copied at summon time because the stat-boost spell mutates
// them permanently per copy; the catalog stays immutable.
type OwnedUnit struct {
	gorm.Model
	UserID    string `json:"user_id" gorm:"index"`
	Name      string `json:"name"`
	Stars     int    `json:"stars"`
	HitPoints int    `json:"hp"`
	Attack    int    `json:"atk"`
	Defense   int    `json:"def"`
	// Ability keeps the human-readable description; AbilityKeys holds the
	// resolved kinds as a JSON array so combat never re-parses text.
	Ability     string         `json:"ability"`
	AbilityKeys datatypes.JSON `json:"ability_keys" gorm:"column:ability_keys"`
	Spells      datatypes.JSON `json:"spells"`
	Image       string         `json:"image"`
}

func (OwnedUnit) TableName() string { return "owned_units" }

// NewOwnedUnit copies a catalog template into a per-user inventory record.
func NewOwnedUnit(userID string, tpl UnitTemplate) OwnedUnit {
	keys, _ := json.Marshal(tpl.Abilities)
	spells, _ := json.Marshal(tpl.Spells)
	return OwnedUnit{
		UserID:      userID,
		Name:        tpl.Name,
		Stars:       tpl.Stars,
		HitPoints:   tpl.Stats.HitPoints,
		Attack:      tpl.Stats.Attack,
		Defense:     tpl.Stats.Defense,
		Ability:     tpl.Ability,
		AbilityKeys: datatypes.JSON(keys),
		Spells:      datatypes.JSON(spells),
		Image:       tpl.Image,
	}
}

// Stats assembles the record's current stat block.
func (u *OwnedUnit) StatBlock() Stats {
	return Stats{HitPoints: u.HitPoints, Attack: u.Attack, Defense: u.Defense}
}

// SetStats writes a stat block back onto the record (stat-boost permanence).
func (u *OwnedUnit) SetStats(s Stats) {
	u.HitPoints = s.HitPoints
	u.Attack = s.Attack
	u.Defense = s.Defense
}

// AbilityKinds decodes the stored ability keys. Corrupt or missing data
// degrades to "no passives" rather than failing a battle.
func (u *OwnedUnit) AbilityKinds() []AbilityKind {
	var kinds []AbilityKind
	if len(u.AbilityKeys) > 0 {
		_ = json.Unmarshal(u.AbilityKeys, &kinds)
	}
	return kinds
}

// SpellList decodes the stored spell descriptors.
func (u *OwnedUnit) SpellList() []SpellDescriptor {
	var spells []SpellDescriptor
	if len(u.Spells) > 0 {
		_ = json.Unmarshal(u.Spells, &spells)
	}
	return spells
}

// StartingPoints is granted once, when a profile row is first created.
const StartingPoints = 100

// PlayerProfile stores a user's point balance, prestige level and active
// unit choice. One row per opaque user ID.
type PlayerProfile struct {
	gorm.Model
	UserID       string `json:"user_id" gorm:"uniqueIndex"`
	Points       int    `json:"points"`
	Prestige     int    `json:"prestige"`
	ActiveUnitID uint   `json:"active_unit_id"`
}

func (PlayerProfile) TableName() string { return "player_profiles" }

// PointMultiplier returns the prestige bonus applied to every point gain.
func (p *PlayerProfile) PointMultiplier() float64 {
	return 1.0 + float64(p.Prestige)*0.1
}

// Bank is the single global house balance fed by gambling losses.
type Bank struct {
	gorm.Model
	Amount int `json:"amount"`
}

func (Bank) TableName() string { return "bank" }

// BossRecord is the persistent singleton boss. Exactly one non-defeated
// row exists at any time; HP is checkpointed after every battle turn so a
// crash loses at most one turn of damage.
type BossRecord struct {
	gorm.Model
	Name      string `json:"name"`
	Stars     int    `json:"stars"`
	HitPoints int    `json:"hp"`
	Attack    int    `json:"atk"`
	Defense   int    `json:"def"`
	MaxHP     int    `json:"max_hp"`
	CurrentHP int    `json:"current_hp"`
	Defeated  bool   `json:"defeated"`
	Image     string `json:"image"`

	Ability     string         `json:"ability"`
	AbilityKeys datatypes.JSON `json:"ability_keys" gorm:"column:ability_keys"`
	Spells      datatypes.JSON `json:"spells"`
}

func (BossRecord) TableName() string { return "boss_records" }

// NewBossRecord derives a boss from a catalog template with every base
// stat multiplied by the given factor.
func NewBossRecord(tpl UnitTemplate, factor int) BossRecord {
	keys, _ := json.Marshal(tpl.Abilities)
	spells, _ := json.Marshal(tpl.Spells)
	hp := tpl.Stats.HitPoints * factor
	return BossRecord{
		Name:        tpl.Name,
		Stars:       tpl.Stars,
		HitPoints:   hp,
		Attack:      tpl.Stats.Attack * factor,
		Defense:     tpl.Stats.Defense * factor,
		MaxHP:       hp,
		CurrentHP:   hp,
		Image:       tpl.Image,
		Ability:     tpl.Ability,
		AbilityKeys: datatypes.JSON(keys),
		Spells:      datatypes.JSON(spells),
	}
}

// StatBlock assembles the boss's stat block; the jackpot is derived from it.
func (b *BossRecord) StatBlock() Stats {
	return Stats{HitPoints: b.HitPoints, Attack: b.Attack, Defense: b.Defense}
}

// AbilityKinds decodes the stored ability keys.
func (b *BossRecord) AbilityKinds() []AbilityKind {
	var kinds []AbilityKind
	if len(b.AbilityKeys) > 0 {
		_ = json.Unmarshal(b.AbilityKeys, &kinds)
	}
	return kinds
}

// SpellList decodes the stored spell descriptors.
func (b *BossRecord) SpellList() []SpellDescriptor {
	var spells []SpellDescriptor
	if len(b.Spells) > 0 {
		_ = json.Unmarshal(b.Spells, &spells)
	}
	return spells
}
