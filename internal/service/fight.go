package service

import (
	"errors"

	"github.com/GiovanniPerreon/gacha-arena/internal/constants"
	"github.com/GiovanniPerreon/gacha-arena/internal/dedupe"
	"github.com/GiovanniPerreon/gacha-arena/internal/engine"
	"github.com/GiovanniPerreon/gacha-arena/internal/game"
	"github.com/GiovanniPerreon/gacha-arena/internal/logging"
)

var (
	ErrBossDefeated = errors.New("the boss has already been defeated")
	ErrBattleOver   = errors.New("the battle has already concluded")
)

const (
	// BossStatFactor multiplies a catalog unit's base stats into a boss.
	BossStatFactor = 10
	// BossJackpotFactor sizes the victory jackpot from the boss's stat total.
	BossJackpotFactor = 10
)

// ParticipantView is one side of a battle as reported to clients.
type ParticipantView struct {
	UserID    string `json:"user_id,omitempty"`
	Name      string `json:"name"`
	CurrentHP int    `json:"current_hp"`
	MaxHP     int    `json:"max_hp"`
}

// BattleView is a read-only snapshot of a session, safe to serialize.
type BattleView struct {
	ID              string             `json:"id"`
	ChannelID       string             `json:"channel_id"`
	State           string             `json:"state"`
	BossFight       bool               `json:"boss_fight"`
	TurnIndex       int                `json:"turn_index"`
	ActiveUserID    string             `json:"active_user_id,omitempty"`
	Participants    [2]ParticipantView `json:"participants"`
	ShieldRemaining int                `json:"shield_remaining"`
	ShieldConsumed  bool               `json:"shield_consumed"`
	Log             []string           `json:"log"`
	Concluded       bool               `json:"concluded"`
	WinnerName      string             `json:"winner_name,omitempty"`
	JackpotAwarded  int                `json:"jackpot_awarded,omitempty"`
}

// activeCombatant resolves the unit a user fights with: the persisted
// active choice when set, otherwise the first owned unit.
func (a *Arena) activeCombatant(userID string) (*engine.Combatant, error) {
	profile, err := a.repo.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	units, err := a.repo.GetInventory(userID)
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		return nil, ErrInventoryEmpty
	}
	chosen := &units[0]
	if profile.ActiveUnitID != 0 {
		found := false
		for i := range units {
			if units[i].ID == profile.ActiveUnitID {
				chosen = &units[i]
				found = true
				break
			}
		}
		if !found {
			// The chosen unit was wiped (prestige); fall back silently.
			chosen = &units[0]
		}
	}
	return engine.NewOwnedCombatant(chosen), nil
}

// StartBattle opens a PvP battle between two users in a channel. The
// challenger acts first; the opponent receives the second-player shield.
func (a *Arena) StartBattle(channelID, userID, opponentID string) (*BattleView, error) {
	if _, exists := a.lookupSession(channelID); exists {
		return nil, ErrBattleExists
	}
	challenger, err := a.activeCombatant(userID)
	if err != nil {
		return nil, err
	}
	opponent, err := a.activeCombatant(opponentID)
	if err != nil {
		return nil, err
	}

	b := engine.NewBattle(challenger, opponent)
	s := a.newSession(channelID, [2]string{userID, opponentID}, false, b)

	a.mu.Lock()
	if _, exists := a.sessions[channelID]; exists {
		a.mu.Unlock()
		return nil, ErrBattleExists
	}
	a.sessions[channelID] = s
	a.mu.Unlock()

	logging.Info("battle started", logging.Fields{
		constants.LogFieldChannelID: channelID,
		constants.LogFieldBattleID:  s.ID,
		constants.LogFieldUserID:    userID,
	})
	return a.snapshot(s, 0), nil
}

// StartBossBattle opens a fight against the persistent boss. The boss is
// participant B and keeps whatever HP previous fighters left it with. The
// boss fights one channel at a time: two live sessions against the same
// record would each checkpoint its own copy of the HP, erasing the
// other's damage.
func (a *Arena) StartBossBattle(channelID, userID string) (*BattleView, error) {
	if _, exists := a.lookupSession(channelID); exists {
		return nil, ErrBattleExists
	}
	if a.bossSessionActive() {
		return nil, ErrBossBusy
	}
	fighter, err := a.activeCombatant(userID)
	if err != nil {
		return nil, err
	}
	boss, err := a.EnsureBoss()
	if err != nil {
		return nil, err
	}
	if boss.CurrentHP <= 0 {
		return nil, ErrBossDefeated
	}

	b := engine.NewBattle(fighter, engine.NewBossCombatant(boss))
	s := a.newSession(channelID, [2]string{userID, ""}, true, b)
	s.bossID = boss.ID

	a.mu.Lock()
	if _, exists := a.sessions[channelID]; exists {
		a.mu.Unlock()
		return nil, ErrBattleExists
	}
	for _, other := range a.sessions {
		if other.bossFight {
			a.mu.Unlock()
			return nil, ErrBossBusy
		}
	}
	a.sessions[channelID] = s
	a.mu.Unlock()

	logging.Info("boss battle started", logging.Fields{
		constants.LogFieldChannelID: channelID,
		constants.LogFieldBattleID:  s.ID,
		constants.LogFieldUserID:    userID,
		constants.LogFieldBoss:      boss.Name,
	})
	return a.snapshot(s, 0), nil
}

// Attack resolves one attack turn for userID. In a boss fight the boss
// immediately takes its own turn afterwards, and the boss's HP is
// checkpointed so a crash loses at most one turn of damage.
func (a *Arena) Attack(channelID, userID string) (*BattleView, error) {
	s, ok := a.lookupSession(channelID)
	if !ok {
		return nil, ErrBattleNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.battle.Concluded() {
		a.removeSession(channelID)
		return nil, ErrBattleOver
	}
	if s.userIDs[s.battle.ActiveIndex()] != userID {
		return nil, ErrNotYourTurn
	}

	if err := s.battle.AdvanceTurn(); err != nil {
		if errors.Is(err, engine.ErrBattleConcluded) {
			a.removeSession(channelID)
			return nil, ErrBattleOver
		}
		return nil, err
	}

	// Boss turn: the boss always answers with a plain attack.
	if s.bossFight && !s.battle.Concluded() {
		if err := s.battle.AdvanceTurn(); err != nil {
			return nil, err
		}
	}

	jackpot := 0
	if s.bossFight {
		jackpot = a.settleBossTurn(s, userID)
	}

	s.touch()
	view := a.snapshot(s, 6)
	view.JackpotAwarded = jackpot
	if s.battle.Concluded() {
		a.removeSession(channelID)
	}
	return view, nil
}

// CastSpell casts the active user's spell at the given index. Spells never
// advance the turn; stat changes are written back to the owned unit.
func (a *Arena) CastSpell(channelID, userID string, index int) (*BattleView, error) {
	s, ok := a.lookupSession(channelID)
	if !ok {
		return nil, ErrBattleNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.battle.Concluded() {
		a.removeSession(channelID)
		return nil, ErrBattleOver
	}
	if s.userIDs[s.battle.ActiveIndex()] != userID {
		return nil, ErrNotYourTurn
	}

	res, err := s.battle.CastSpell(index)
	if err != nil {
		if errors.Is(err, engine.ErrBattleConcluded) {
			a.removeSession(channelID)
			return nil, ErrBattleOver
		}
		return nil, err
	}

	for _, ch := range res.Changes {
		if ch.OwnedUnitID == 0 {
			continue
		}
		unit, loadErr := a.repo.GetUnitByID(ch.OwnedUnitID)
		if loadErr != nil {
			logging.Warn("failed to load unit for stat write-back", loadErr, logging.Fields{constants.LogFieldUnit: ch.UnitName})
			continue
		}
		unit.SetStats(ch.NewStats)
		if saveErr := a.repo.UpdateUnit(unit); saveErr != nil {
			logging.Warn("failed to persist stat boost", saveErr, logging.Fields{constants.LogFieldUnit: ch.UnitName})
		}
	}

	jackpot := 0
	if s.bossFight {
		// A lethal direct-damage spell can conclude the fight.
		jackpot = a.settleBossTurn(s, userID)
	}

	s.touch()
	view := a.snapshot(s, 6)
	view.JackpotAwarded = jackpot
	if s.battle.Concluded() {
		a.removeSession(channelID)
	}
	return view, nil
}

// BattleState returns a snapshot of the channel's battle with the full log.
func (a *Arena) BattleState(channelID string) (*BattleView, error) {
	s, ok := a.lookupSession(channelID)
	if !ok {
		return nil, ErrBattleNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return a.snapshot(s, 0), nil
}

// settleBossTurn checkpoints the boss HP and, when the fight just ended,
// settles the outcome: jackpot plus respawn on a player win, respawn of
// nothing on a loss (the boss simply keeps its HP). Returns the jackpot
// awarded, zero when the fight continues or was lost.
func (a *Arena) settleBossTurn(s *session, userID string) int {
	boss := s.battle.Participant(1)
	rec, err := a.repo.GetBoss()
	if err != nil || rec == nil || rec.ID != s.bossID {
		logging.Warn("boss record vanished during fight", err, logging.Fields{constants.LogFieldBattleID: s.ID})
		return 0
	}

	if !s.battle.Concluded() {
		rec.CurrentHP = boss.CurrentHP
		if saveErr := a.repo.SaveBoss(rec); saveErr != nil {
			logging.Warn("failed to checkpoint boss hp", saveErr, logging.Fields{constants.LogFieldBoss: rec.Name})
		}
		return 0
	}

	winner, _ := s.battle.Winner()
	if winner != 0 {
		// The boss won. Its HP still reflects the damage taken.
		rec.CurrentHP = boss.CurrentHP
		if saveErr := a.repo.SaveBoss(rec); saveErr != nil {
			logging.Warn("failed to checkpoint boss hp", saveErr, logging.Fields{constants.LogFieldBoss: rec.Name})
		}
		return 0
	}

	rec.CurrentHP = 0
	rec.Defeated = true
	if saveErr := a.repo.SaveBoss(rec); saveErr != nil {
		logging.Warn("failed to mark boss defeated", saveErr, logging.Fields{constants.LogFieldBoss: rec.Name})
	}

	jackpot := BossJackpotFactor * rec.StatBlock().Total()
	profile, profErr := a.repo.GetProfile(userID)
	if profErr != nil {
		logging.Warn("failed to load profile for jackpot", profErr, logging.Fields{constants.LogFieldUserID: userID})
		return 0
	}
	awarded := int(float64(jackpot) * profile.PointMultiplier())
	profile.Points += awarded
	if saveErr := a.repo.SaveProfile(profile); saveErr != nil {
		logging.Warn("failed to award jackpot", saveErr, logging.Fields{constants.LogFieldUserID: userID})
		return 0
	}
	logging.Info("boss defeated", logging.Fields{
		constants.LogFieldUserID: userID,
		constants.LogFieldBoss:   rec.Name,
		constants.LogFieldPoints: awarded,
	})

	if _, respawnErr := a.respawnBoss(); respawnErr != nil {
		logging.Warn("failed to respawn boss", respawnErr, nil)
	}
	return awarded
}

// EnsureBoss returns the live boss, spawning one when none exists.
// Concurrent callers share a single spawn.
func (a *Arena) EnsureBoss() (*game.BossRecord, error) {
	rec, err := a.repo.GetBoss()
	if err != nil {
		return nil, err
	}
	if rec != nil {
		return rec, nil
	}
	return a.respawnBoss()
}

// respawnBoss rolls a fresh boss from the catalog and persists it. The
// singleflight group guarantees one roll wins when several battles finish
// at once.
func (a *Arena) respawnBoss() (*game.BossRecord, error) {
	v, err, _ := dedupe.BossGroup.Do("respawn", func() (interface{}, error) {
		if existing, lookErr := a.repo.GetBoss(); lookErr == nil && existing != nil {
			return existing, nil
		}
		tpl := a.randomUnit()
		rec := game.NewBossRecord(tpl, BossStatFactor)
		if saveErr := a.repo.SaveBoss(&rec); saveErr != nil {
			return nil, saveErr
		}
		logging.Info("boss spawned", logging.Fields{constants.LogFieldBoss: rec.Name})
		return &rec, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*game.BossRecord), nil
}

func (a *Arena) snapshot(s *session, logTail int) *BattleView {
	b := s.battle
	remaining, consumed := b.ShieldRemaining()
	view := &BattleView{
		ID:              s.ID,
		ChannelID:       s.ChannelID,
		State:           b.State(),
		BossFight:       s.bossFight,
		TurnIndex:       b.TurnIndex(),
		ShieldRemaining: remaining,
		ShieldConsumed:  consumed,
		Log:             b.Log(logTail),
		Concluded:       b.Concluded(),
	}
	for i := 0; i < 2; i++ {
		c := b.Participant(i)
		view.Participants[i] = ParticipantView{
			UserID:    s.userIDs[i],
			Name:      c.Name,
			CurrentHP: c.CurrentHP,
			MaxHP:     c.MaxHP,
		}
	}
	if b.Concluded() {
		if w, ok := b.Winner(); ok {
			view.WinnerName = b.Participant(w).Name
		}
	} else {
		view.ActiveUserID = s.userIDs[b.ActiveIndex()]
	}
	return view
}
