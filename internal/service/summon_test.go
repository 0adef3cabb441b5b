package service

import (
	"errors"
	"testing"

	"github.com/GiovanniPerreon/gacha-arena/internal/game"
)

func gremlinTemplate() game.UnitTemplate {
	return game.UnitTemplate{
		Name:  "Gremlin",
		Stars: 1,
		Stats: game.Stats{HitPoints: 50, Attack: 10, Defense: 5},
	}
}

func TestSummon_DeductsCostAndStoresUnits(t *testing.T) {
	repo := newMockRepo()
	a := newTestArena(repo, gremlinTemplate())

	units, profile, err := a.Summon("u1", 1)
	if err != nil {
		t.Fatalf("Summon: %v", err)
	}
	if len(units) != 1 || units[0].Name != "Gremlin" {
		t.Fatalf("unexpected summon result: %+v", units)
	}
	if units[0].ID == 0 {
		t.Fatalf("expected stored unit to have an ID")
	}
	if profile.Points != game.StartingPoints-50 {
		t.Fatalf("expected %d points left, got %d", game.StartingPoints-50, profile.Points)
	}
	inv, _ := repo.GetInventory("u1")
	if len(inv) != 1 {
		t.Fatalf("expected 1 unit in inventory, got %d", len(inv))
	}
}

func TestSummon_NotEnoughPoints(t *testing.T) {
	repo := newMockRepo()
	a := newTestArena(repo, gremlinTemplate())

	// Starting balance covers two single pulls, not a ten pull.
	if _, _, err := a.Summon("u1", 10); !errors.Is(err, ErrNotEnoughPoints) {
		t.Fatalf("expected ErrNotEnoughPoints, got %v", err)
	}
	inv, _ := repo.GetInventory("u1")
	if len(inv) != 0 {
		t.Fatalf("failed summon must not add units, got %d", len(inv))
	}
}

func TestSummon_RejectsOddCounts(t *testing.T) {
	repo := newMockRepo()
	a := newTestArena(repo, gremlinTemplate())
	if _, _, err := a.Summon("u1", 3); !errors.Is(err, ErrInvalidSummonCount) {
		t.Fatalf("expected ErrInvalidSummonCount, got %v", err)
	}
}

func TestSetActiveUnit_ByNameAmongOwned(t *testing.T) {
	repo := newMockRepo()
	a := newTestArena(repo, gremlinTemplate())

	owned := game.NewOwnedUnit("u1", gremlinTemplate())
	if err := repo.AddUnits([]game.OwnedUnit{owned}); err != nil {
		t.Fatalf("AddUnits: %v", err)
	}

	unit, err := a.SetActiveUnit("u1", "gremlin")
	if err != nil {
		t.Fatalf("SetActiveUnit: %v", err)
	}
	profile, _ := repo.GetProfile("u1")
	if profile.ActiveUnitID != unit.ID {
		t.Fatalf("expected active unit %d, got %d", unit.ID, profile.ActiveUnitID)
	}

	if _, err := a.SetActiveUnit("u1", "Dragon"); !errors.Is(err, ErrUnitNotOwned) {
		t.Fatalf("expected ErrUnitNotOwned, got %v", err)
	}
}

func TestUnitInfo_UnknownName(t *testing.T) {
	a := newTestArena(newMockRepo(), gremlinTemplate())
	if _, err := a.UnitInfo("Basilisk"); !errors.Is(err, ErrUnknownUnit) {
		t.Fatalf("expected ErrUnknownUnit, got %v", err)
	}
	if tpl, err := a.UnitInfo("GREMLIN"); err != nil || tpl.Name != "Gremlin" {
		t.Fatalf("expected case-insensitive lookup, got %+v, %v", tpl, err)
	}
}
