package game

import (
	"math/rand"
	"strings"
)

// Stats holds the three base combat attributes shared by catalog units,
// owned units and the boss.
type Stats struct {
	HitPoints int `json:"hp"`
	Attack    int `json:"atk"`
	Defense   int `json:"def"`
}

// Total returns the sum of all stats. The boss jackpot is computed from it.
func (s Stats) Total() int { return s.HitPoints + s.Attack + s.Defense }

// AbilityKind identifies a passive effect. Catalog entries carry explicit
// kinds; free-form ability text is only parsed once, at config load.
type AbilityKind string

const (
	AbilityNone            AbilityKind = ""
	AbilityStickyBody      AbilityKind = "sticky_body"
	AbilityShieldWall      AbilityKind = "shield_wall"
	AbilitySneakAttack     AbilityKind = "sneak_attack"
	AbilityArcaneBlast     AbilityKind = "arcane_blast"
	AbilityInferno         AbilityKind = "inferno"
	AbilityAmericaSupports AbilityKind = "america_supports"
)

// SpellKind identifies an active, once-per-own-turn effect.
type SpellKind string

const (
	SpellHeal         SpellKind = "heal"
	SpellDirectDamage SpellKind = "direct_damage"
	SpellPowerSurge   SpellKind = "power_surge"
	SpellStatBoost    SpellKind = "stat_boost"
)

// SpellDescriptor pairs a display name with its machine-readable effect.
type SpellDescriptor struct {
	Name string    `json:"name"`
	Kind SpellKind `json:"kind"`
}

// UnitTemplate is an immutable catalog entry. Instances for battle are
// created from it by the engine; it is never mutated after config load.
type UnitTemplate struct {
	Name      string            `json:"name"`
	Stars     int               `json:"stars"`
	Stats     Stats             `json:"stats"`
	Ability   string            `json:"ability"`
	Abilities []AbilityKind     `json:"ability_keys"`
	Spells    []SpellDescriptor `json:"spells"`
	Image     string            `json:"image"`
}

// legacyAbilityKeywords maps the historical free-form phrases to ability
// kinds. Order matters: handlers attach in this order, and the order is
// part of the combat contract.
var legacyAbilityKeywords = []struct {
	phrase string
	kind   AbilityKind
}{
	{"Double Defence", AbilityStickyBody},
	{"Sticky Body", AbilityStickyBody},
	{"Reduces incoming damage", AbilityShieldWall},
	{"Shield Wall", AbilityShieldWall},
	{"Sneak Attack", AbilitySneakAttack},
	{"Arcane Blast", AbilityArcaneBlast},
	{"Inferno", AbilityInferno},
	{"America supports Michael Saves", AbilityAmericaSupports},
}

// ParseLegacyAbility converts a free-form ability description into ability
// kinds by phrase matching. It exists so old catalog data can be imported;
// matching is case and phrase sensitive, and a phrase may appear at most
// once in the result even when two of its aliases match.
func ParseLegacyAbility(text string) []AbilityKind {
	var kinds []AbilityKind
	seen := map[AbilityKind]bool{}
	for _, kw := range legacyAbilityKeywords {
		if strings.Contains(text, kw.phrase) && !seen[kw.kind] {
			kinds = append(kinds, kw.kind)
			seen[kw.kind] = true
		}
	}
	return kinds
}

// StarRate is one entry of the summon probability table.
type StarRate struct {
	Stars int     `json:"stars"`
	Rate  float64 `json:"rate"`
}

// DefaultSummonCost is the point price of a single summon.
const DefaultSummonCost = 50

// DefaultStarRates mirrors the historical summon odds.
var DefaultStarRates = []StarRate{
	{Stars: 1, Rate: 0.35},
	{Stars: 2, Rate: 0.25},
	{Stars: 3, Rate: 0.20},
	{Stars: 4, Rate: 0.12},
	{Stars: 5, Rate: 0.07},
	{Stars: 6, Rate: 0.01},
}

// Catalog is the static, read-only unit pool loaded at process start.
type Catalog struct {
	units []UnitTemplate
	rates []StarRate
}

func NewCatalog(units []UnitTemplate, rates []StarRate) *Catalog {
	if len(rates) == 0 {
		rates = DefaultStarRates
	}
	return &Catalog{units: units, rates: rates}
}

// Units returns all catalog entries in declaration order.
func (c *Catalog) Units() []UnitTemplate { return c.units }

// ByName finds a unit by name, case-insensitive.
func (c *Catalog) ByName(name string) (UnitTemplate, bool) {
	for _, u := range c.units {
		if strings.EqualFold(u.Name, name) {
			return u, true
		}
	}
	return UnitTemplate{}, false
}

func (c *Catalog) byStars(stars int) []UnitTemplate {
	var out []UnitTemplate
	for _, u := range c.units {
		if u.Stars == stars {
			out = append(out, u)
		}
	}
	return out
}

// Roll draws one unit using the star rate table. A roll past the
// cumulative rates falls back to the 1-star pool.
func (c *Catalog) Roll(rng *rand.Rand) UnitTemplate {
	roll := rng.Float64()
	cumulative := 0.0
	for _, sr := range c.rates {
		cumulative += sr.Rate
		if roll < cumulative {
			if pool := c.byStars(sr.Stars); len(pool) > 0 {
				return pool[rng.Intn(len(pool))]
			}
		}
	}
	pool := c.byStars(1)
	if len(pool) == 0 {
		pool = c.units
	}
	return pool[rng.Intn(len(pool))]
}

// Random draws a unit uniformly, ignoring star rates. Boss respawns use it.
func (c *Catalog) Random(rng *rand.Rand) UnitTemplate {
	return c.units[rng.Intn(len(c.units))]
}
