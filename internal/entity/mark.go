package entity

// Mark is the content of a single board cell.
type Mark uint8

const (
	Empty Mark = iota
	Human
	Bot
)

const (
	HumanSymbol = "O"
	BotSymbol   = "X"
)

// Opponent - returns the other side. Empty has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case Human:
		return Bot
	case Bot:
		return Human
	default:
		return Empty
	}
}

func (that Mark) String() string {
	switch that {
	case Human:
		return HumanSymbol
	case Bot:
		return BotSymbol
	default:
		return " "
	}
}
