package parser

import (
	"errors"
	"strings"
	"testing"

	"pokebattle/animation"
	"pokebattle/game"
)

const sampleLog = `|player|p1|Ash
|player|p2|Gary
|switch|p1a: Pikachu|100/100|electric
|switch|p2a: Charizard|100/100|fire,flying
|turn|1
|-message|Pikachu shocks Charizard with electricity!
|damage|p2a: Charizard|61/100
|damage|p2a: Blastoise|10/100
|turn|2
|damage|p1a: Pikachu|0/100
|faint|p1a: Pikachu
|win|Gary`

func TestParseLog(t *testing.T) {
	state, err := ParseLog(sampleLog)
	if err != nil {
		t.Fatal(err)
	}
	if state.Turn != 2 {
		t.Fatalf("Turn = %d, want 2", state.Turn)
	}
	if state.Winner != "Gary" {
		t.Fatalf("Winner = %q", state.Winner)
	}
	p1 := state.Players["p1"]
	if p1 == nil || p1.Name != "Ash" || p1.Active == nil {
		t.Fatalf("p1 = %+v", p1)
	}
	if !p1.Active.Fainted || p1.Active.HP != 0 {
		t.Fatalf("Pikachu = %+v, want fainted", p1.Active)
	}
	p2 := state.Players["p2"].Active
	if p2.HP != 61 || p2.MaxHP != 100 {
		t.Fatalf("Charizard HP = %d/%d, want 61/100 (damage to an inactive Pokémon is ignored)", p2.HP, p2.MaxHP)
	}
	if got := strings.Join(p2.Type, ","); got != "fire,flying" {
		t.Fatalf("Charizard types = %q", got)
	}
	if state.LastMessage() != "Pikachu shocks Charizard with electricity!" {
		t.Fatalf("LastMessage = %q", state.LastMessage())
	}
}

func TestParseLogWithoutPlayers(t *testing.T) {
	tests := []string{
		"",
		"|turn|1\n|-message|Nobody is here.",
		"|switch|p1a: Pikachu|100/100|electric",
	}
	for _, logText := range tests {
		if _, err := ParseLog(logText); !errors.Is(err, ErrNoPlayers) {
			t.Errorf("ParseLog(%q) err = %v, want ErrNoPlayers", logText, err)
		}
	}
}

func TestProcessLineIgnoresJunk(t *testing.T) {
	state := game.NewBattleState()
	for _, line := range []string{"", "hello", "|turn|abc", "|switch|nobody|1/1", "|switch|p9a: Mew|1/1", "|damage|p1a|5/10", "|faint|"} {
		ProcessLine(state, line)
	}
	if state.Turn != 0 || len(state.Players) != 0 || state.Winner != "" {
		t.Fatalf("junk changed state: %+v", state)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	a := game.PokemonRecord{Name: "pikachu", BaseStats: game.DefaultStats(), Types: []string{"electric"}}
	b := game.PokemonRecord{Name: "charizard", BaseStats: game.DefaultStats(), Types: []string{"fire", "flying"}}
	script := animation.Plan(animation.SeededRand(3)(), a, b, game.BattleVerdict{Winner: "charizard", Reasoning: "Speed."})

	lines := Encode(script)
	if lines[0] != "|player|p1|Pikachu" || lines[1] != "|player|p2|Charizard" {
		t.Fatalf("header = %q", lines[:2])
	}
	if last := lines[len(lines)-1]; last != "|win|Charizard" {
		t.Fatalf("last line = %q", last)
	}

	state := game.NewBattleState()
	faints := 0
	for _, l := range lines {
		if strings.HasPrefix(l, "|faint|") {
			faints++
		}
		ProcessLine(state, l)
	}
	if faints != 1 {
		t.Fatalf("faint lines = %d, want 1", faints)
	}
	if state.Turn != len(script.Ticks) {
		t.Fatalf("Turn = %d, want %d", state.Turn, len(script.Ticks))
	}
	pika := state.Players["p1"].Active
	zard := state.Players["p2"].Active
	if !pika.Fainted || pika.HP != 0 {
		t.Fatalf("Pikachu = %+v, want fainted", pika)
	}
	if zard.Fainted || zard.HP != 20 {
		t.Fatalf("Charizard = %+v, want 20/100", zard)
	}
	if state.LastMessage() != script.Outro {
		t.Fatalf("LastMessage = %q, want outro", state.LastMessage())
	}
}

func TestRenderBattleState(t *testing.T) {
	state, _ := ParseLog(strings.Join([]string{
		"|player|p1|Ash",
		"|player|p2|Gary",
		"|switch|p1a: Pikachu|100/100|electric",
		"|switch|p2a: Gyarados|80/100|water,flying",
		"|turn|3",
		"|-message|Gyarados is charging a powerful attack!",
	}, "\n"))

	out := RenderBattleState(state)
	for _, want := range []string{
		"Turn 3\n",
		"Ash: Pikachu [electric] 100/100\n",
		"Gary: Gyarados [water/flying] 80/100\n",
		"> Gyarados is charging a powerful attack!\n",
		"Hint: Pikachu's typing is super effective (x4) against Gyarados.\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Ash:") > strings.Index(out, "Gary:") {
		t.Error("players should be listed in id order")
	}

	ProcessLine(state, "|win|Ash")
	out = RenderBattleState(state)
	if !strings.Contains(out, "Winner: Ash\n") || strings.Contains(out, "Hint:") {
		t.Fatalf("finished battle summary:\n%s", out)
	}
}

func TestEffectivenessNote(t *testing.T) {
	tests := map[float64]string{
		0:   "has no effect on",
		0.5: "is not very effective (x0.5) against",
		1:   "is neutral against",
		2:   "is super effective (x2) against",
	}
	for eff, want := range tests {
		if got := effectivenessNote(eff); got != want {
			t.Errorf("effectivenessNote(%v) = %q, want %q", eff, got, want)
		}
	}
}
