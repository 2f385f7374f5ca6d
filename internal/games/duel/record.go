package duel

// Record is the persisted summary of a finished match.
type Record struct {
	GameID        string
	Target        int
	Difficulty    string
	Result        Result
	PlayerSeconds int
	AISeconds     int
}

// Recorder persists finished matches.
type Recorder interface {
	SaveMatchResult(rec Record) error
}

// Record returns the summary of the finished match.
func (g *Game) Record() (Record, bool) {
	res, ok := g.Result()
	if !ok {
		return Record{}, false
	}
	return Record{
		GameID:        g.ID(),
		Target:        g.target,
		Difficulty:    string(g.difficulty),
		Result:        res,
		PlayerSeconds: g.match.Player.Seconds(),
		AISeconds:     g.match.AI.Seconds(),
	}, true
}
