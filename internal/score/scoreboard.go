package score

import (
	"math"
	"strconv"
)

// Scoring constants.
const (
	BonusLimit         = 63
	BonusScore         = 35
	SmallStraightScore = 15
	LargeStraightScore = 30
	YachtScore         = 50
)

// Slot is an optional category value. The zero Slot is unset.
type Slot struct {
	Value uint16
	Set   bool
}

// Some returns a set slot holding v.
func Some(v uint16) Slot {
	return Slot{Value: v, Set: true}
}

// Or returns the slot value, or def when unset.
func (s Slot) Or(def uint16) uint16 {
	if !s.Set {
		return def
	}
	return s.Value
}

// Ptr returns a pointer to a copy of the value, or nil when unset.
func (s Slot) Ptr() *uint16 {
	if !s.Set {
		return nil
	}
	v := s.Value
	return &v
}

// SlotFromPtr is the inverse of Ptr.
func SlotFromPtr(p *uint16) Slot {
	if p == nil {
		return Slot{}
	}
	return Some(*p)
}

func (s Slot) String() string {
	if !s.Set {
		return "-"
	}
	return strconv.Itoa(int(s.Value))
}

// Scoreboard is one player's score sheet. Derived fields are only
// correct after Recompute; Apply always recomputes.
type Scoreboard struct {
	Numbers [6]Slot

	NumbersSum  uint16
	LeftToBonus uint16
	Bonus       uint16

	Choice     Slot
	FullHouse  Slot
	FourOfKind Slot

	SmallStraight Slot
	LargeStraight Slot
	Yacht         Slot

	TotalScore uint16
}

// NewScoreboard returns an empty scoreboard with derived fields set.
func NewScoreboard() Scoreboard {
	var sb Scoreboard
	sb.Recompute()
	return sb
}

// Apply writes the input's category and recomputes derived fields.
func (sb *Scoreboard) Apply(in Input) {
	c := in.Category()
	switch {
	case c.IsNumber():
		sb.Numbers[c-Ones] = in.value
	case c == Choice:
		sb.Choice = in.value
	case c == FullHouse:
		sb.FullHouse = in.value
	case c == FourOfKind:
		sb.FourOfKind = in.value
	case c.IsClaim():
		award := Some(0)
		if in.claimed {
			award = Some(c.Award())
		}
		*sb.claimSlot(c) = award
	default:
		return
	}
	sb.Recompute()
}

// Recompute derives NumbersSum, LeftToBonus, Bonus and TotalScore from the
// category fields alone.
func (sb *Scoreboard) Recompute() {
	sum := 0
	for _, n := range sb.Numbers {
		sum += int(n.Or(0))
	}
	sb.NumbersSum = clampU16(sum)

	if sum >= BonusLimit {
		sb.LeftToBonus = 0
		sb.Bonus = BonusScore
	} else {
		sb.LeftToBonus = uint16(BonusLimit - sum)
		sb.Bonus = 0
	}

	total := sum + int(sb.Bonus)
	for _, s := range []Slot{sb.Choice, sb.FullHouse, sb.FourOfKind, sb.SmallStraight, sb.LargeStraight, sb.Yacht} {
		total += int(s.Or(0))
	}
	sb.TotalScore = clampU16(total)
}

// Slot returns the stored value of a category.
func (sb Scoreboard) Slot(c Category) Slot {
	switch {
	case c.IsNumber():
		return sb.Numbers[c-Ones]
	case c == Choice:
		return sb.Choice
	case c == FullHouse:
		return sb.FullHouse
	case c == FourOfKind:
		return sb.FourOfKind
	case c.IsClaim():
		return *sb.claimSlot(c)
	default:
		return Slot{}
	}
}

// Filled counts the categories that hold a value.
func (sb Scoreboard) Filled() int {
	n := 0
	for _, c := range Categories() {
		if sb.Slot(c).Set {
			n++
		}
	}
	return n
}

// Complete reports whether every category holds a value.
func (sb Scoreboard) Complete() bool {
	return sb.Filled() == categoryCount
}

func (sb *Scoreboard) claimSlot(c Category) *Slot {
	switch c {
	case SmallStraight:
		return &sb.SmallStraight
	case LargeStraight:
		return &sb.LargeStraight
	default:
		return &sb.Yacht
	}
}

func clampU16(v int) uint16 {
	if v > math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(v)
}
