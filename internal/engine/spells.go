package engine

import (
	"math"
	"strconv"

	"github.com/GiovanniPerreon/gacha-arena/internal/game"
)

// HealFraction of max HP restored by the heal spell.
const HealFraction = 0.3

// StatBoostAmount is added permanently to every base stat by the
// stat-boost spell.
const StatBoostAmount = 10

// StatChange describes a permanent stat mutation the caller must write
// back to storage when the combatant is a player-owned unit. The engine
// itself never touches storage.
type StatChange struct {
	OwnedUnitID uint
	UnitName    string
	NewStats    game.Stats
	NewMaxHP    int
}

// SpellResult reports what a cast did. Applied is false for the soft
// failure cases (no spells, bad index, already used this turn) where the
// battle state is left untouched.
type SpellResult struct {
	Applied bool
	Kind    game.SpellKind
	Name    string
	Amount  int
	Changes []StatChange
}

// CastSpell invokes the active participant's spell at the given index.
// Casting is independent of attacking and never advances the turn; it is
// gated to once per own turn. An unrecognized spell kind is a logged
// no-op, not an error.
func (b *Battle) CastSpell(index int) (SpellResult, error) {
	if b.Concluded() {
		return SpellResult{}, ErrBattleConcluded
	}
	caster := b.units[b.ActiveIndex()]
	target := b.units[1-b.ActiveIndex()]

	if len(caster.Spells) == 0 {
		b.addLog(caster.Name + " has no spells to cast.")
		return SpellResult{}, ErrSpellUnavailable
	}
	if index < 0 || index >= len(caster.Spells) {
		b.addLog(caster.Name + " fumbles; no such spell.")
		return SpellResult{}, ErrSpellUnavailable
	}
	if caster.SpellUsedThisTurn {
		b.addLog(caster.Name + " already used a spell this turn.")
		return SpellResult{}, ErrSpellUnavailable
	}

	spell := caster.Spells[index]
	res := SpellResult{Kind: spell.Kind, Name: spell.Name}

	switch spell.Kind {
	case game.SpellHeal:
		healed := caster.heal(int(math.Round(HealFraction * float64(caster.MaxHP))))
		res.Applied = true
		res.Amount = healed
		b.addLog(caster.Name + " casts " + spell.Name + " and restores " + strconv.Itoa(healed) +
			" HP! (" + strconv.Itoa(caster.CurrentHP) + "/" + strconv.Itoa(caster.MaxHP) + " HP)")

	case game.SpellDirectDamage:
		dmg := caster.Stats.Attack - target.Stats.Defense
		if dmg < 0 {
			dmg = 0
		}
		target.CurrentHP -= dmg
		res.Applied = true
		res.Amount = dmg
		b.addLog(caster.Name + " casts " + spell.Name + " for " + strconv.Itoa(dmg) +
			" damage! (" + strconv.Itoa(target.CurrentHP) + "/" + strconv.Itoa(target.MaxHP) + " HP left)")
		// A lethal spell ends the fight without waiting for an attack.
		b.resolveWinner()

	case game.SpellPowerSurge:
		caster.PowerSurgeActive = true
		res.Applied = true
		b.addLog(caster.Name + " casts " + spell.Name + "! The next attack will deal double damage.")

	case game.SpellStatBoost:
		wasFull := caster.CurrentHP == caster.MaxHP
		caster.Stats.HitPoints += StatBoostAmount
		caster.Stats.Attack += StatBoostAmount
		caster.Stats.Defense += StatBoostAmount
		caster.MaxHP = caster.Stats.HitPoints
		if wasFull {
			caster.CurrentHP = caster.MaxHP
		}
		res.Applied = true
		res.Amount = StatBoostAmount
		res.Changes = append(res.Changes, StatChange{
			OwnedUnitID: caster.OwnedUnitID,
			UnitName:    caster.Name,
			NewStats:    caster.Stats,
			NewMaxHP:    caster.MaxHP,
		})
		b.addLog(caster.Name + " casts " + spell.Name + "! All stats permanently increased by " + strconv.Itoa(StatBoostAmount) + ".")

	default:
		// Soft fail per the historical behavior: log and move on.
		b.addLog(caster.Name + " tried to cast " + spell.Name + ", but nothing happened.")
		caster.SpellUsedThisTurn = true
		return res, nil
	}

	caster.SpellUsedThisTurn = true
	return res, nil
}
