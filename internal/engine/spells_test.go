package engine

import (
	"strings"
	"testing"

	"github.com/GiovanniPerreon/gacha-arena/internal/game"
)

func casterUnit(spells ...game.SpellDescriptor) game.UnitTemplate {
	tpl := plainUnit("Caster", 100, 30, 5)
	tpl.Spells = spells
	return tpl
}

func TestCastSpell_HealClampsAtMaxHP(t *testing.T) {
	a := NewCombatant(casterUnit(game.SpellDescriptor{Name: "Mend", Kind: game.SpellHeal}))
	b := NewCombatant(plainUnit("Foe", 100, 0, 0))
	bt := NewBattle(a, b)

	a.CurrentHP = 95
	res, err := bt.CastSpell(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Applied {
		t.Fatalf("expected heal to apply")
	}
	// round(0.3*100)=30 requested, only 5 fits.
	if res.Amount != 5 {
		t.Fatalf("expected 5 healed, got %d", res.Amount)
	}
	if a.CurrentHP != a.MaxHP {
		t.Fatalf("heal overshot max HP: %d/%d", a.CurrentHP, a.MaxHP)
	}
}

func TestCastSpell_OncePerOwnTurn(t *testing.T) {
	a := NewCombatant(casterUnit(game.SpellDescriptor{Name: "Mend", Kind: game.SpellHeal}))
	b := NewCombatant(plainUnit("Foe", 100, 0, 0))
	bt := NewBattle(a, b)

	if _, err := bt.CastSpell(0); err != nil {
		t.Fatalf("first cast should succeed: %v", err)
	}
	if _, err := bt.CastSpell(0); err != ErrSpellUnavailable {
		t.Fatalf("second cast same turn must fail, got %v", err)
	}

	// Attacking advances the turn; after a full round the spell is
	// available again on the caster's own turn.
	if err := bt.AdvanceTurn(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := bt.AdvanceTurn(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a.CurrentHP = 50
	if _, err := bt.CastSpell(0); err != nil {
		t.Fatalf("cast on a later turn should succeed: %v", err)
	}
}

func TestCastSpell_InvalidIndexAndNoSpells(t *testing.T) {
	a := NewCombatant(casterUnit(game.SpellDescriptor{Name: "Mend", Kind: game.SpellHeal}))
	b := NewCombatant(plainUnit("Foe", 100, 0, 0))
	bt := NewBattle(a, b)

	if _, err := bt.CastSpell(3); err != ErrSpellUnavailable {
		t.Fatalf("expected ErrSpellUnavailable for bad index, got %v", err)
	}
	if a.SpellUsedThisTurn {
		t.Fatalf("failed cast must not consume the spell action")
	}

	none := NewCombatant(plainUnit("Mute", 100, 10, 0))
	bt2 := NewBattle(none, NewCombatant(plainUnit("Foe", 100, 0, 0)))
	if _, err := bt2.CastSpell(0); err != ErrSpellUnavailable {
		t.Fatalf("expected ErrSpellUnavailable with no spells, got %v", err)
	}
}

func TestCastSpell_DirectDamageIgnoresAttackAction(t *testing.T) {
	a := NewCombatant(casterUnit(game.SpellDescriptor{Name: "Fire Breath", Kind: game.SpellDirectDamage}))
	b := NewCombatant(plainUnit("Foe", 100, 0, 20))
	bt := NewBattle(a, b)

	res, err := bt.CastSpell(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// max(0, 30-20) = 10, applied immediately, not via the shield path.
	if res.Amount != 10 || b.CurrentHP != 90 {
		t.Fatalf("expected 10 spell damage, got amount=%d HP=%d", res.Amount, b.CurrentHP)
	}
	if _, used := bt.ShieldRemaining(); used {
		t.Fatalf("spell damage must not consume the shield")
	}
	// The attack action is still available this turn.
	if err := bt.AdvanceTurn(); err != nil {
		t.Fatalf("attack after cast should work: %v", err)
	}
}

func TestCastSpell_LethalDirectDamageConcludes(t *testing.T) {
	a := NewCombatant(casterUnit(game.SpellDescriptor{Name: "Fire Breath", Kind: game.SpellDirectDamage}))
	b := NewCombatant(plainUnit("Foe", 5, 0, 0))
	bt := NewBattle(a, b)

	if _, err := bt.CastSpell(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bt.Concluded() {
		t.Fatalf("lethal spell must conclude the battle")
	}
	if w, _ := bt.Winner(); w != 0 {
		t.Fatalf("expected caster to win, got %d", w)
	}
}

func TestCastSpell_PowerSurgeDoublesNextAttackOnly(t *testing.T) {
	a := NewCombatant(casterUnit(game.SpellDescriptor{Name: "Power Surge", Kind: game.SpellPowerSurge}))
	b := NewCombatant(plainUnit("Foe", 1000, 0, 5))
	bt := NewBattle(a, b)

	if _, err := bt.CastSpell(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.PowerSurgeActive {
		t.Fatalf("power surge should be armed")
	}

	// Next attack: (30-5)*2 = 50, shield (0.2*5 + 0.1*1000 = 101) eats it.
	if err := bt.AdvanceTurn(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.PowerSurgeActive {
		t.Fatalf("power surge must clear after one attack")
	}
	if rem, _ := bt.ShieldRemaining(); rem != 51 {
		t.Fatalf("expected 50 doubled damage absorbed, remaining=%d", rem)
	}

	// Following attack is back to normal: 25 damage.
	if err := bt.AdvanceTurn(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := bt.AdvanceTurn(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.CurrentHP != 975 {
		t.Fatalf("expected plain 25 damage after surge, got HP=%d", b.CurrentHP)
	}
}

func TestCastSpell_PowerSurgeCarriesAcrossTurns(t *testing.T) {
	a := NewCombatant(plainUnit("Foe", 1000, 0, 0))
	tpl := casterUnit(game.SpellDescriptor{Name: "Power Surge", Kind: game.SpellPowerSurge})
	c := NewCombatant(tpl)
	bt := NewBattle(a, c)

	// B casts on its own turn after A attacks once.
	if err := bt.AdvanceTurn(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := bt.CastSpell(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// B does not attack this turn... there is no skip, so B attacks, and
	// the surge applies to that very attack: (30-0)*2 = 60.
	if err := bt.AdvanceTurn(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.CurrentHP != 940 {
		t.Fatalf("expected 60 surged damage, got HP=%d", a.CurrentHP)
	}
}

func TestCastSpell_StatBoostEmitsChangeAndPreservesFullHP(t *testing.T) {
	tpl := casterUnit(game.SpellDescriptor{Name: "Ascend", Kind: game.SpellStatBoost})
	a := NewCombatant(tpl)
	a.OwnedUnitID = 42
	b := NewCombatant(plainUnit("Foe", 100, 0, 0))
	bt := NewBattle(a, b)

	res, err := bt.CastSpell(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Changes) != 1 {
		t.Fatalf("expected one stat change event, got %d", len(res.Changes))
	}
	ch := res.Changes[0]
	if ch.OwnedUnitID != 42 {
		t.Fatalf("stat change must carry the inventory link, got %d", ch.OwnedUnitID)
	}
	want := game.Stats{HitPoints: 110, Attack: 40, Defense: 15}
	if ch.NewStats != want {
		t.Fatalf("unexpected boosted stats: %+v", ch.NewStats)
	}
	// Was at full HP: stays at full against the new max.
	if a.CurrentHP != 110 || a.MaxHP != 110 {
		t.Fatalf("expected full HP preserved at new max, got %d/%d", a.CurrentHP, a.MaxHP)
	}
}

func TestCastSpell_StatBoostKeepsDamageWhenNotFull(t *testing.T) {
	tpl := casterUnit(game.SpellDescriptor{Name: "Ascend", Kind: game.SpellStatBoost})
	a := NewCombatant(tpl)
	b := NewCombatant(plainUnit("Foe", 100, 0, 0))
	bt := NewBattle(a, b)

	a.CurrentHP = 60
	if _, err := bt.CastSpell(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.CurrentHP != 60 || a.MaxHP != 110 {
		t.Fatalf("expected 60/110 after boost, got %d/%d", a.CurrentHP, a.MaxHP)
	}
}

func TestCastSpell_UnknownKindIsLoggedNoOp(t *testing.T) {
	a := NewCombatant(casterUnit(game.SpellDescriptor{Name: "Summon Rain", Kind: "weather"}))
	b := NewCombatant(plainUnit("Foe", 100, 0, 0))
	bt := NewBattle(a, b)

	res, err := bt.CastSpell(0)
	if err != nil {
		t.Fatalf("unknown spell must not error: %v", err)
	}
	if res.Applied {
		t.Fatalf("unknown spell must not apply")
	}
	log := bt.Log(1)
	if !strings.Contains(log[0], "nothing happened") {
		t.Fatalf("expected the no-op log line, got %q", log[0])
	}
	if b.CurrentHP != 100 {
		t.Fatalf("unknown spell must not change state, HP=%d", b.CurrentHP)
	}
}
