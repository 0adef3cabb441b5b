package engine

import (
	"strconv"
	"strings"

	"github.com/GiovanniPerreon/gacha-arena/internal/game"
)

// trigger identifies the points in a turn where passives fire.
type trigger string

const (
	triggerOnAttack  trigger = "on_attack"
	triggerOnDefend  trigger = "on_defend"
	triggerOnTurnEnd trigger = "on_turn_end"
)

// passiveHandler transforms the running damage value at a trigger point.
// Handlers run in registration order; each receives the previous handler's
// output. Underflow is clamped at zero per step, never negative.
type passiveHandler func(b *Battle, self *Combatant, t trigger, damage int) int

// AmericaSupportsMultiplier boosts post-mitigation damage for the
// america_supports passive.
// TODO: confirm the intended value with the catalog owner; both 1.2 and
// 2.0 have shipped at different times.
const AmericaSupportsMultiplier = 1.2

// InfernoSplashDamage is dealt to every other participant at turn end.
const InfernoSplashDamage = 30

// ShieldWallReduction is the flat on-defend damage reduction.
const ShieldWallReduction = 10

var passiveTable = map[game.AbilityKind]passiveHandler{
	game.AbilityStickyBody:      stickyBody,
	game.AbilityShieldWall:      shieldWall,
	game.AbilitySneakAttack:     sneakAttack,
	game.AbilityArcaneBlast:     arcaneBlast,
	game.AbilityInferno:         inferno,
	game.AbilityAmericaSupports: americaSupports,
}

// stickyBody subtracts the defender's own DEF from incoming damage a
// second time ("double defence").
func stickyBody(b *Battle, self *Combatant, t trigger, damage int) int {
	if t != triggerOnDefend {
		return damage
	}
	reduced := damage - self.Stats.Defense
	if reduced < 0 {
		reduced = 0
	}
	b.addLog(self.Name + "'s Sticky Body activates! DEF doubled, damage reduced to " + strconv.Itoa(reduced) + ".")
	return reduced
}

func shieldWall(b *Battle, self *Combatant, t trigger, damage int) int {
	if t != triggerOnDefend {
		return damage
	}
	reduced := damage - ShieldWallReduction
	if reduced < 0 {
		reduced = 0
	}
	b.addLog(self.Name + "'s Shield Wall activates! Damage reduced by " + strconv.Itoa(ShieldWallReduction) + " to " + strconv.Itoa(reduced) + ".")
	return reduced
}

// sneakAttack doubles damage on the first attack resolution of this
// combatant's lifetime, then never again.
func sneakAttack(b *Battle, self *Combatant, t trigger, damage int) int {
	if t != triggerOnAttack || self.SneakAttackUsed {
		return damage
	}
	self.SneakAttackUsed = true
	doubled := damage * 2
	b.addLog(self.Name + "'s Sneak Attack! First hit deals double damage: " + strconv.Itoa(doubled) + ".")
	return doubled
}

// arcaneBlast recomputes damage from scratch ignoring half the enemy DEF,
// replacing (not stacking with) whatever the pipeline produced so far.
func arcaneBlast(b *Battle, self *Combatant, t trigger, damage int) int {
	if t != triggerOnAttack {
		return damage
	}
	defender := b.opponentOf(self)
	recomputed := float64(self.Stats.Attack) - 0.5*float64(defender.Stats.Defense)
	if recomputed < 0 {
		recomputed = 0
	}
	d := int(recomputed)
	b.addLog(self.Name + "'s Arcane Blast! Ignores 50% DEF, damage is " + strconv.Itoa(d) + ".")
	return d
}

// inferno deals splash damage to every other participant at turn end.
// It only fires while its owner is the attacker of record, and only for
// units whose name marks them a dragon.
func inferno(b *Battle, self *Combatant, t trigger, damage int) int {
	if t != triggerOnTurnEnd {
		return damage
	}
	if !strings.Contains(self.Name, "Dragon") {
		return damage
	}
	for _, other := range b.units {
		if other == self {
			continue
		}
		other.CurrentHP -= InfernoSplashDamage
		b.addLog(self.Name + "'s Inferno triggers! Deals " + strconv.Itoa(InfernoSplashDamage) + " splash damage to " + other.Name + ".")
	}
	return damage
}

func americaSupports(b *Battle, self *Combatant, t trigger, damage int) int {
	if t != triggerOnAttack {
		return damage
	}
	boosted := int(float64(damage) * AmericaSupportsMultiplier)
	b.addLog(self.Name + "'s America supports Michael Saves! Post-mitigation damage increased: " + strconv.Itoa(damage) + " -> " + strconv.Itoa(boosted) + ".")
	return boosted
}
