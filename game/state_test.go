package game

import "testing"

func TestLastMessage(t *testing.T) {
	s := NewBattleState()
	if s.LastMessage() != "" {
		t.Fatal("new state should have no message")
	}
	s.Log = append(s.Log, "Battle begins!", "Pikachu attacks!")
	if got := s.LastMessage(); got != "Pikachu attacks!" {
		t.Fatalf("LastMessage = %q", got)
	}
}

func TestSameName(t *testing.T) {
	if !SameName(" Pikachu ", "pikachu") {
		t.Fatal("names should match ignoring case and space")
	}
	if SameName("pikachu", "raichu") {
		t.Fatal("different names matched")
	}
}
