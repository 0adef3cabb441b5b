package service

import (
	"errors"
	"strings"

	"github.com/GiovanniPerreon/gacha-arena/internal/constants"
	"github.com/GiovanniPerreon/gacha-arena/internal/game"
	"github.com/GiovanniPerreon/gacha-arena/internal/logging"
)

var (
	ErrNotEnoughPoints    = errors.New("not enough points")
	ErrUnknownUnit        = errors.New("unknown unit")
	ErrInvalidSummonCount = errors.New("summon count must be 1 or 10")
)

// Summon rolls count units from the catalog, stores them in the user's
// inventory and deducts the cost. Only single and ten pulls exist.
func (a *Arena) Summon(userID string, count int) ([]game.OwnedUnit, *game.PlayerProfile, error) {
	if count != 1 && count != 10 {
		return nil, nil, ErrInvalidSummonCount
	}
	profile, err := a.repo.GetProfile(userID)
	if err != nil {
		return nil, nil, err
	}
	cost := a.summonCost * count
	if profile.Points < cost {
		return nil, nil, ErrNotEnoughPoints
	}

	units := make([]game.OwnedUnit, 0, count)
	for i := 0; i < count; i++ {
		tpl := a.rollUnit()
		units = append(units, game.NewOwnedUnit(userID, tpl))
	}
	if err := a.repo.AddUnits(units); err != nil {
		return nil, nil, err
	}
	profile.Points -= cost
	if err := a.repo.SaveProfile(profile); err != nil {
		return nil, nil, err
	}

	logging.Info("summon completed", logging.Fields{
		constants.LogFieldUserID: userID,
		constants.LogFieldCount:  count,
		constants.LogFieldPoints: profile.Points,
	})
	return units, profile, nil
}

// UnitInfo looks a catalog entry up by name, case-insensitive.
func (a *Arena) UnitInfo(name string) (game.UnitTemplate, error) {
	tpl, ok := a.catalog.ByName(name)
	if !ok {
		return game.UnitTemplate{}, ErrUnknownUnit
	}
	return tpl, nil
}

// Inventory returns the user's owned units in acquisition order.
func (a *Arena) Inventory(userID string) ([]game.OwnedUnit, error) {
	return a.repo.GetInventory(userID)
}

// AllInventories returns every inventory grouped by owner.
func (a *Arena) AllInventories() (map[string][]game.OwnedUnit, error) {
	return a.repo.AllInventories()
}

// ActiveUnit reports which owned unit the user currently fights with.
func (a *Arena) ActiveUnit(userID string) (*game.OwnedUnit, error) {
	c, err := a.activeCombatant(userID)
	if err != nil {
		return nil, err
	}
	return a.repo.GetUnitByID(c.OwnedUnitID)
}

// SetActiveUnit persists which owned unit the user fights with, chosen by
// unit name among the copies they own.
func (a *Arena) SetActiveUnit(userID, name string) (*game.OwnedUnit, error) {
	units, err := a.repo.GetInventory(userID)
	if err != nil {
		return nil, err
	}
	for i := range units {
		if strings.EqualFold(units[i].Name, name) {
			profile, profErr := a.repo.GetProfile(userID)
			if profErr != nil {
				return nil, profErr
			}
			profile.ActiveUnitID = units[i].ID
			if saveErr := a.repo.SaveProfile(profile); saveErr != nil {
				return nil, saveErr
			}
			return &units[i], nil
		}
	}
	return nil, ErrUnitNotOwned
}
