package model

type Outcome int

const (
	OutcomeTie Outcome = iota
	OutcomeFirst
	OutcomeSecond
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFirst:
		return "first"
	case OutcomeSecond:
		return "second"
	default:
		return "tie"
	}
}

// Comparison is the result of a head to head between two ranked players.
type Comparison struct {
	First   RankedPlayer `json:"first"`
	Second  RankedPlayer `json:"second"`
	Outcome Outcome      `json:"-"`
}

// Winner returns the player with the strictly higher score, or nil on a tie.
func (c *Comparison) Winner() *RankedPlayer {
	switch c.Outcome {
	case OutcomeFirst:
		return &c.First
	case OutcomeSecond:
		return &c.Second
	default:
		return nil
	}
}

func (c *Comparison) IsTie() bool {
	return c.Outcome == OutcomeTie
}
