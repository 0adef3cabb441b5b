package engine

import (
	"context"
	"errors"
	"strconv"

	"github.com/looplab/fsm"
)

// Battle states. Participant A (index 0) always acts on even turn
// indices; the machine only ever advances forward.
const (
	StateAwaitingA = "awaiting_a"
	StateAwaitingB = "awaiting_b"
	StateConcluded = "concluded"
)

const (
	eventPassToB = "pass_to_b"
	eventPassToA = "pass_to_a"
	eventFinish  = "finish"
)

// DefaultTurnCap bounds stalemates: at the cap the side with the higher
// HP ratio wins, ties going to participant A.
const DefaultTurnCap = 200

var (
	// ErrBattleConcluded signals a call on an already-finished battle.
	// This is a programming error in the caller, never a soft no-op.
	ErrBattleConcluded = errors.New("battle already concluded")
	// ErrSpellUnavailable covers casting with no spells, a bad index or
	// a spell already used this turn. Battle state is unchanged.
	ErrSpellUnavailable = errors.New("spell unavailable")
)

// shieldState is the one-time absorption pool granted to participant B.
// Consumed is set on the first qualifying hit regardless of how much of
// the pool that hit used up.
type shieldState struct {
	Remaining int
	Consumed  bool
}

// Battle coordinates two combatants through alternating turns. It owns no
// storage, no clock and no globals; many instances may coexist, but calls
// against one instance must be serialized by the caller.
type Battle struct {
	units     [2]*Combatant
	turnIndex int
	log       []string
	shield    shieldState
	machine   *fsm.FSM
	turnCap   int
	winner    int // participant index, -1 until concluded
}

// NewBattle pairs two combatants. Participant B receives the one-time
// shield, sized from its attack, defense and the HP it actually brings
// into the fight. A boss resumed half-dead gets a shield to match.
func NewBattle(a, b *Combatant) *Battle {
	bt := &Battle{
		units:   [2]*Combatant{a, b},
		turnCap: DefaultTurnCap,
		winner:  -1,
	}
	bt.machine = fsm.NewFSM(
		StateAwaitingA,
		fsm.Events{
			{Name: eventPassToB, Src: []string{StateAwaitingA}, Dst: StateAwaitingB},
			{Name: eventPassToA, Src: []string{StateAwaitingB}, Dst: StateAwaitingA},
			{Name: eventFinish, Src: []string{StateAwaitingA, StateAwaitingB}, Dst: StateConcluded},
		},
		fsm.Callbacks{},
	)
	shieldVal := int(0.2*float64(b.Stats.Attack+b.Stats.Defense) + 0.1*float64(b.CurrentHP))
	bt.shield = shieldState{Remaining: shieldVal}
	bt.addLog("Second Player Shield: " + b.Name + " receives a shield that absorbs the first " + strconv.Itoa(shieldVal) + " damage!")
	return bt
}

// SetTurnCap overrides the stalemate turn cap. Values below 1 are ignored.
func (b *Battle) SetTurnCap(n int) {
	if n >= 1 {
		b.turnCap = n
	}
}

func (b *Battle) addLog(msg string) { b.log = append(b.log, msg) }

// Log returns the most recent tail entries of the append-only battle log.
// A non-positive tail returns the whole log.
func (b *Battle) Log(tail int) []string {
	if tail <= 0 || tail >= len(b.log) {
		out := make([]string, len(b.log))
		copy(out, b.log)
		return out
	}
	out := make([]string, tail)
	copy(out, b.log[len(b.log)-tail:])
	return out
}

// State exposes the machine's current state string.
func (b *Battle) State() string { return b.machine.Current() }

// Concluded reports whether a winner has been determined.
func (b *Battle) Concluded() bool { return b.machine.Current() == StateConcluded }

// Winner returns the winning participant index once concluded.
func (b *Battle) Winner() (int, bool) {
	if b.winner < 0 {
		return 0, false
	}
	return b.winner, true
}

// ActiveIndex is the participant due to act this turn.
func (b *Battle) ActiveIndex() int { return b.turnIndex % 2 }

// TurnIndex returns the zero-based count of resolved attack actions.
func (b *Battle) TurnIndex() int { return b.turnIndex }

// Participant returns the combatant at the given index.
func (b *Battle) Participant(i int) *Combatant { return b.units[i] }

// ShieldRemaining reports the absorption pool and whether it was spent.
func (b *Battle) ShieldRemaining() (int, bool) {
	return b.shield.Remaining, b.shield.Consumed
}

func (b *Battle) opponentOf(c *Combatant) *Combatant {
	if b.units[0] == c {
		return b.units[1]
	}
	return b.units[0]
}

// AdvanceTurn resolves one attack action for the active participant:
// turn-start resets, base damage, power surge, attacker passives, shield
// absorption, defender passives, HP application, turn-end passives and
// the win check. Calling it on a concluded battle is an error.
func (b *Battle) AdvanceTurn() error {
	if b.Concluded() {
		return ErrBattleConcluded
	}
	active := b.ActiveIndex()
	attacker := b.units[active]
	defender := b.units[1-active]

	// Turn start: the attacker regains its spell action.
	attacker.SpellUsedThisTurn = false

	damage := attacker.Stats.Attack - defender.Stats.Defense
	if damage < 0 {
		damage = 0
	}

	// Power Surge consumes itself on the next attack resolution, before
	// any passives see the value.
	if attacker.PowerSurgeActive {
		attacker.PowerSurgeActive = false
		damage *= 2
		b.addLog(attacker.Name + "'s Power Surge doubles the attack: " + strconv.Itoa(damage) + "!")
	}

	for _, p := range attacker.passives {
		damage = p(b, attacker, triggerOnAttack, damage)
		if damage < 0 {
			damage = 0
		}
	}

	// Second-player shield: participant B's first incoming hit only.
	absorbed := 0
	if active == 0 && !b.shield.Consumed && b.shield.Remaining > 0 {
		absorbed = damage
		if absorbed > b.shield.Remaining {
			absorbed = b.shield.Remaining
		}
		damage -= absorbed
		b.shield.Remaining -= absorbed
		b.shield.Consumed = true
		if absorbed > 0 {
			b.addLog("Second Player Shield absorbs " + strconv.Itoa(absorbed) + " damage from the first attack!")
		}
		if b.shield.Remaining <= 0 {
			b.addLog("Second Player Shield is broken!")
		}
	}

	for _, p := range defender.passives {
		damage = p(b, defender, triggerOnDefend, damage)
		if damage < 0 {
			damage = 0
		}
	}

	defender.CurrentHP -= damage
	b.addLog(attacker.Name + " attacks " + defender.Name + " for " + strconv.Itoa(damage) +
		" damage! (" + strconv.Itoa(defender.CurrentHP) + "/" + strconv.Itoa(defender.MaxHP) + " HP left)")

	// Turn end: attacker-of-record passives may splash beyond the defender.
	for _, p := range attacker.passives {
		p(b, attacker, triggerOnTurnEnd, 0)
	}

	if b.resolveWinner() {
		return nil
	}

	b.turnIndex++
	if b.turnIndex >= b.turnCap {
		b.resolveStalemate()
		return nil
	}
	if active == 0 {
		_ = b.machine.Event(context.Background(), eventPassToB)
	} else {
		_ = b.machine.Event(context.Background(), eventPassToA)
	}
	return nil
}

// resolveWinner checks both participants and concludes the battle when one
// is down. Participant B is checked first so simultaneous knockouts (splash
// at turn end) resolve in favor of participant A.
func (b *Battle) resolveWinner() bool {
	var winner int
	switch {
	case b.units[1].Defeated():
		winner = 0
	case b.units[0].Defeated():
		winner = 1
	default:
		return false
	}
	b.conclude(winner)
	b.addLog(b.units[winner].Name + " wins!")
	return true
}

// resolveStalemate ends a fight nobody can finish: whoever holds the
// higher HP ratio at the turn cap wins, ties going to participant A.
func (b *Battle) resolveStalemate() {
	winner := 0
	if b.units[1].HPRatio() > b.units[0].HPRatio() {
		winner = 1
	}
	b.conclude(winner)
	b.addLog("The battle reached " + strconv.Itoa(b.turnCap) + " turns with no knockout. " + b.units[winner].Name + " wins on remaining HP!")
}

func (b *Battle) conclude(winner int) {
	b.winner = winner
	_ = b.machine.Event(context.Background(), eventFinish)
}
