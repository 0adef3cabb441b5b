package engine

import (
	"github.com/GiovanniPerreon/gacha-arena/internal/game"
)

// Combatant is one mutable battle participant, built from a catalog
// template, an inventory record or the persistent boss. Stats may mutate
// permanently during a battle (stat-boost spell); HP goes negative freely
// on damage and is only clamped on heal.
type Combatant struct {
	Name  string
	Stars int
	Stats game.Stats

	MaxHP     int
	CurrentHP int

	Spells []game.SpellDescriptor

	// One-shot and per-turn markers. Explicit fields, set at
	// construction, never conjured dynamically.
	SpellUsedThisTurn bool
	SneakAttackUsed   bool
	PowerSurgeActive  bool

	// OwnedUnitID links back to the inventory record for player-owned
	// units so permanent stat changes can be written through. Zero for
	// the boss and catalog-only opponents.
	OwnedUnitID uint

	passives []passiveHandler
}

// NewCombatant builds a participant from an immutable catalog template.
func NewCombatant(tpl game.UnitTemplate) *Combatant {
	c := &Combatant{
		Name:      tpl.Name,
		Stars:     tpl.Stars,
		Stats:     tpl.Stats,
		MaxHP:     tpl.Stats.HitPoints,
		CurrentHP: tpl.Stats.HitPoints,
		Spells:    append([]game.SpellDescriptor(nil), tpl.Spells...),
	}
	c.registerPassives(tpl.Abilities)
	return c
}

// NewOwnedCombatant builds a participant from a user's inventory record,
// keeping the link needed for stat-boost write-back.
func NewOwnedCombatant(u *game.OwnedUnit) *Combatant {
	c := &Combatant{
		Name:        u.Name,
		Stars:       u.Stars,
		Stats:       u.StatBlock(),
		MaxHP:       u.HitPoints,
		CurrentHP:   u.HitPoints,
		Spells:      u.SpellList(),
		OwnedUnitID: u.ID,
	}
	c.registerPassives(u.AbilityKinds())
	return c
}

// NewBossCombatant builds the boss participant. Current HP comes from the
// persisted record, not from the stat block, so damage carries across
// battle sessions and process restarts.
func NewBossCombatant(rec *game.BossRecord) *Combatant {
	c := &Combatant{
		Name:      rec.Name,
		Stars:     rec.Stars,
		Stats:     rec.StatBlock(),
		MaxHP:     rec.MaxHP,
		CurrentHP: rec.CurrentHP,
		Spells:    rec.SpellList(),
	}
	c.registerPassives(rec.AbilityKinds())
	return c
}

// registerPassives attaches handlers in the order the kinds appear.
// Registration order is stable and part of the damage-pipeline contract.
func (c *Combatant) registerPassives(kinds []game.AbilityKind) {
	for _, k := range kinds {
		if h, ok := passiveTable[k]; ok {
			c.passives = append(c.passives, h)
		}
	}
}

// Defeated reports whether this combatant is out of the fight.
func (c *Combatant) Defeated() bool { return c.CurrentHP <= 0 }

// HPRatio returns current HP as a fraction of max, for the stalemate rule.
func (c *Combatant) HPRatio() float64 {
	if c.MaxHP <= 0 {
		return 0
	}
	if c.CurrentHP < 0 {
		return 0
	}
	return float64(c.CurrentHP) / float64(c.MaxHP)
}

// heal restores up to amount, clamped at MaxHP, and returns the amount
// actually restored.
func (c *Combatant) heal(amount int) int {
	if amount < 0 {
		amount = 0
	}
	healed := amount
	if c.CurrentHP+healed > c.MaxHP {
		healed = c.MaxHP - c.CurrentHP
	}
	if healed < 0 {
		healed = 0
	}
	c.CurrentHP += healed
	return healed
}
