package game

// Pokemon is a combatant as seen by a live feed watcher. HP is expressed in
// percent of MaxHP.
type Pokemon struct {
	Name    string
	HP      int
	MaxHP   int
	Fainted bool
	Type    []string
}

type Player struct {
	ID     string
	Name   string
	Active *Pokemon
}

type BattleState struct {
	Players map[string]*Player
	Turn    int
	Log     []string
	Winner  string
}

func NewBattleState() *BattleState {
	return &BattleState{
		Players: make(map[string]*Player),
		Turn:    0,
	}
}

// LastMessage returns the most recent flavor line, or "".
func (s *BattleState) LastMessage() string {
	if len(s.Log) == 0 {
		return ""
	}
	return s.Log[len(s.Log)-1]
}
