package service

import (
	"errors"

	"github.com/GiovanniPerreon/gacha-arena/internal/constants"
	"github.com/GiovanniPerreon/gacha-arena/internal/game"
	"github.com/GiovanniPerreon/gacha-arena/internal/logging"
)

var (
	ErrInvalidWager = errors.New("wager must be a positive amount")
)

// GambleWinChance is the probability the player wins a gamble. Losses
// feed the global bank; wins are minted.
const GambleWinChance = 0.45

// PrestigeBaseCost and PrestigeCostPerLevel form the prestige price:
// base + level * per-level.
const (
	PrestigeBaseCost     = 10000
	PrestigeCostPerLevel = 1000
)

// SlotSymbols are the reel faces. Three of a kind pays SlotTriplePayout,
// any pair pays SlotPairPayout.
var SlotSymbols = []string{"🍒", "🍋", "🍊", "🍇", "⭐", "💎"}

const (
	SlotTriplePayout = 5000
	SlotPairPayout   = 300
)

// Wallet returns the user's profile, creating it with the starting
// balance on first access.
func (a *Arena) Wallet(userID string) (*game.PlayerProfile, error) {
	return a.repo.GetProfile(userID)
}

// Farm grants a tiered random amount of points: rare rolls pay big. The
// prestige multiplier applies to the gain.
func (a *Arena) Farm(userID string) (int, *game.PlayerProfile, error) {
	profile, err := a.repo.GetProfile(userID)
	if err != nil {
		return 0, nil, err
	}

	roll := a.randIntn(100) + 1
	var gain int
	switch {
	case roll == 1:
		gain = 1000 + a.randIntn(4001)
	case roll <= 5:
		gain = 200 + a.randIntn(801)
	case roll <= 20:
		gain = 50 + a.randIntn(151)
	default:
		gain = 1 + a.randIntn(50)
	}
	gain = int(float64(gain) * profile.PointMultiplier())

	profile.Points += gain
	if err := a.repo.SaveProfile(profile); err != nil {
		return 0, nil, err
	}
	return gain, profile, nil
}

// Gamble wagers amount of the user's points. A win doubles the stake; a
// loss moves the stake into the global bank.
func (a *Arena) Gamble(userID string, amount int) (bool, *game.PlayerProfile, error) {
	if amount <= 0 {
		return false, nil, ErrInvalidWager
	}
	profile, err := a.repo.GetProfile(userID)
	if err != nil {
		return false, nil, err
	}
	if profile.Points < amount {
		return false, nil, ErrNotEnoughPoints
	}

	won := a.randFloat() < GambleWinChance
	if won {
		profile.Points += amount
	} else {
		profile.Points -= amount
		bank, bankErr := a.repo.GetBank()
		if bankErr != nil {
			return false, nil, bankErr
		}
		bank.Amount += amount
		if saveErr := a.repo.SaveBank(bank); saveErr != nil {
			return false, nil, saveErr
		}
	}
	if err := a.repo.SaveProfile(profile); err != nil {
		return won, nil, err
	}
	return won, profile, nil
}

// Slots spins three reels. Payouts are multiplied by prestige.
func (a *Arena) Slots(userID string) ([3]string, int, *game.PlayerProfile, error) {
	var reels [3]string
	profile, err := a.repo.GetProfile(userID)
	if err != nil {
		return reels, 0, nil, err
	}

	for i := range reels {
		reels[i] = SlotSymbols[a.randIntn(len(SlotSymbols))]
	}
	payout := 0
	switch {
	case reels[0] == reels[1] && reels[1] == reels[2]:
		payout = SlotTriplePayout
	case reels[0] == reels[1] || reels[1] == reels[2] || reels[0] == reels[2]:
		payout = SlotPairPayout
	}
	if payout > 0 {
		payout = int(float64(payout) * profile.PointMultiplier())
		profile.Points += payout
		if saveErr := a.repo.SaveProfile(profile); saveErr != nil {
			return reels, 0, nil, saveErr
		}
	}
	return reels, payout, profile, nil
}

// PrestigeCost is the price of the user's next prestige level.
func PrestigeCost(level int) int {
	return PrestigeBaseCost + PrestigeCostPerLevel*level
}

// Prestige buys the next prestige level: the cost is deducted, the unit
// inventory is wiped and every future point gain earns +10% per level.
func (a *Arena) Prestige(userID string) (*game.PlayerProfile, error) {
	profile, err := a.repo.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	cost := PrestigeCost(profile.Prestige)
	if profile.Points < cost {
		return nil, ErrNotEnoughPoints
	}

	if err := a.repo.ClearInventory(userID); err != nil {
		return nil, err
	}
	profile.Points -= cost
	profile.Prestige++
	profile.ActiveUnitID = 0
	if err := a.repo.SaveProfile(profile); err != nil {
		return nil, err
	}

	logging.Info("prestige level purchased", logging.Fields{
		constants.LogFieldUserID: userID,
		constants.LogFieldPoints: profile.Points,
	})
	return profile, nil
}

// Leaderboard returns the top profiles plus the bank total.
func (a *Arena) Leaderboard(limit int) ([]game.PlayerProfile, int, error) {
	profiles, err := a.repo.GetTopProfiles(limit)
	if err != nil {
		return nil, 0, err
	}
	bank, err := a.repo.GetBank()
	if err != nil {
		return nil, 0, err
	}
	return profiles, bank.Amount, nil
}
