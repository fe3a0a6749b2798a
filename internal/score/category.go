// Package score implements Yacht categories, inputs and scoreboard arithmetic.
package score

// Category identifies one of the twelve scoring slots.
type Category int

// Categories in board order.
const (
	Ones Category = iota
	Twos
	Threes
	Fours
	Fives
	Sixes
	Choice
	FullHouse
	FourOfKind
	SmallStraight
	LargeStraight
	Yacht
)

const categoryCount = 12

type categoryInfo struct {
	name  string
	label string
	key   rune
}

var categoryTable = [categoryCount]categoryInfo{
	Ones:          {name: "ones", label: "Ones", key: '1'},
	Twos:          {name: "twos", label: "Twos", key: '2'},
	Threes:        {name: "threes", label: "Threes", key: '3'},
	Fours:         {name: "fours", label: "Fours", key: '4'},
	Fives:         {name: "fives", label: "Fives", key: '5'},
	Sixes:         {name: "sixes", label: "Sixes", key: '6'},
	Choice:        {name: "choice", label: "Choice", key: 'c'},
	FullHouse:     {name: "full_house", label: "Full House", key: 'h'},
	FourOfKind:    {name: "four_of_kind", label: "Four of a kind", key: 'k'},
	SmallStraight: {name: "small_straight", label: "Small Straight", key: 's'},
	LargeStraight: {name: "large_straight", label: "Large Straight", key: 'l'},
	Yacht:         {name: "yacht", label: "* YACHT *", key: 'y'},
}

// Categories returns all categories in board order.
func Categories() []Category {
	out := make([]Category, categoryCount)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// Valid reports whether c names a known category.
func (c Category) Valid() bool {
	return c >= Ones && c <= Yacht
}

func (c Category) String() string {
	if !c.Valid() {
		return "unknown"
	}
	return categoryTable[c].name
}

// Label is the human-readable name shown on the board.
func (c Category) Label() string {
	if !c.Valid() {
		return "Unknown"
	}
	return categoryTable[c].label
}

// Key is the single-key shortcut used by the interactive board.
func (c Category) Key() rune {
	if !c.Valid() {
		return 0
	}
	return categoryTable[c].key
}

// IsNumber reports whether c is one of Ones..Sixes.
func (c Category) IsNumber() bool {
	return c >= Ones && c <= Sixes
}

// IsClaim reports whether c is scored by claiming a fixed award.
func (c Category) IsClaim() bool {
	return c == SmallStraight || c == LargeStraight || c == Yacht
}

// Award returns the fixed award of a claim category, or 0.
func (c Category) Award() uint16 {
	switch c {
	case SmallStraight:
		return SmallStraightScore
	case LargeStraight:
		return LargeStraightScore
	case Yacht:
		return YachtScore
	default:
		return 0
	}
}

// CategoryForKey maps a board shortcut key to its category.
func CategoryForKey(r rune) (Category, bool) {
	for i, info := range categoryTable {
		if info.key == r {
			return Category(i), true
		}
	}
	return 0, false
}
