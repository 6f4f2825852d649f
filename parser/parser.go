// Package parser speaks the live battle feed: newline-free "|cmd|arg|arg"
// lines in the style of a Showdown battle log.
package parser

import (
	"errors"
	"strconv"
	"strings"

	"pokebattle/game"
)

// ErrNoPlayers is returned by ParseLog for a log that never names a player.
var ErrNoPlayers = errors.New("parser: log has no |player| lines")

// ParseLog folds a whole multi-line log into a fresh state.
func ParseLog(logText string) (*game.BattleState, error) {
	state := game.NewBattleState()
	for _, line := range strings.Split(logText, "\n") {
		ProcessLine(state, line)
	}
	if len(state.Players) == 0 {
		return state, ErrNoPlayers
	}
	return state, nil
}

// splitIdent turns "p1a: Pikachu" into ("p1", "Pikachu").
func splitIdent(ident string) (string, string, bool) {
	info := strings.SplitN(ident, ": ", 2)
	if len(info) != 2 || len(info[0]) < 2 {
		return "", "", false
	}
	return info[0][:2], info[1], true
}

func parseHP(s string) (int, int, bool) {
	hpInfo := strings.Split(s, "/")
	if len(hpInfo) != 2 {
		return 0, 0, false
	}
	hp, err := strconv.Atoi(strings.TrimSpace(hpInfo[0]))
	if err != nil {
		return 0, 0, false
	}
	maxhp, err := strconv.Atoi(strings.TrimSpace(hpInfo[1]))
	if err != nil {
		return 0, 0, false
	}
	return hp, maxhp, true
}

// active returns the named side's active Pokémon if it is the one named.
func active(state *game.BattleState, ident string) *game.Pokemon {
	playerID, name, ok := splitIdent(ident)
	if !ok {
		return nil
	}
	player, ok := state.Players[playerID]
	if !ok || player.Active == nil || player.Active.Name != name {
		return nil
	}
	return player.Active
}

// ProcessLine applies one feed line to state. Unknown or malformed lines are
// ignored.
func ProcessLine(state *game.BattleState, line string) {
	parts := strings.Split(strings.TrimSpace(line), "|")
	if len(parts) < 2 {
		return
	}
	switch parts[1] {
	case "player":
		if len(parts) >= 4 {
			id := parts[2]
			if _, ok := state.Players[id]; !ok {
				state.Players[id] = &game.Player{ID: id, Name: parts[3]}
			}
		}
	case "switch":
		if len(parts) >= 4 {
			playerID, name, ok := splitIdent(parts[2])
			if !ok {
				return
			}
			player, ok := state.Players[playerID]
			if !ok {
				return
			}
			poke := &game.Pokemon{Name: name}
			if hp, maxhp, ok := parseHP(parts[3]); ok {
				poke.HP, poke.MaxHP = hp, maxhp
			}
			if len(parts) >= 5 && parts[4] != "" {
				poke.Type = strings.Split(parts[4], ",")
			}
			player.Active = poke
		}
	case "-message":
		if len(parts) >= 3 {
			state.Log = append(state.Log, strings.Join(parts[2:], "|"))
		}
	case "turn":
		if len(parts) >= 3 {
			if t, err := strconv.Atoi(parts[2]); err == nil {
				state.Turn = t
			}
		}
	case "damage":
		if len(parts) >= 4 {
			if poke := active(state, parts[2]); poke != nil {
				if hp, maxhp, ok := parseHP(parts[3]); ok {
					poke.HP, poke.MaxHP = hp, maxhp
				}
			}
		}
	case "faint":
		if len(parts) >= 3 {
			if poke := active(state, parts[2]); poke != nil {
				poke.Fainted = true
				poke.HP = 0
			}
		}
	case "win":
		if len(parts) >= 3 {
			state.Winner = parts[2]
		}
	}
}
