package score

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidCategory is returned for an unknown category alias.
	ErrInvalidCategory = errors.New("invalid category")
	// ErrInvalidScore is returned when a score value cannot be parsed.
	ErrInvalidScore = errors.New("invalid score")
)

var categoryAliases = map[string]Category{
	"1": Ones, "1s": Ones, "one": Ones, "ones": Ones, "aces": Ones,
	"2": Twos, "2s": Twos, "two": Twos, "twos": Twos,
	"3": Threes, "3s": Threes, "three": Threes, "threes": Threes,
	"4": Fours, "4s": Fours, "four": Fours, "fours": Fours,
	"5": Fives, "5s": Fives, "five": Fives, "fives": Fives,
	"6": Sixes, "6s": Sixes, "six": Sixes, "sixes": Sixes,

	"c": Choice, "ch": Choice, "choice": Choice, "chance": Choice,
	"h": FullHouse, "fh": FullHouse, "fullhouse": FullHouse, "full-house": FullHouse, "full_house": FullHouse,
	"k": FourOfKind, "4k": FourOfKind, "4oak": FourOfKind, "fourofkind": FourOfKind,
	"four-of-a-kind": FourOfKind, "four_of_kind": FourOfKind,

	"s": SmallStraight, "ss": SmallStraight, "smallstraight": SmallStraight,
	"small-straight": SmallStraight, "small_straight": SmallStraight,
	"l": LargeStraight, "ls": LargeStraight, "largestraight": LargeStraight,
	"large-straight": LargeStraight, "large_straight": LargeStraight,
	"y": Yacht, "yacht": Yacht, "yahtzee": Yacht,
}

// ParseCategory resolves a case-insensitive category alias.
func ParseCategory(alias string) (Category, error) {
	key := strings.ToLower(strings.TrimSpace(alias))
	c, ok := categoryAliases[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCategory, alias)
	}
	return c, nil
}

// ParseValue parses a point value. "true"/"t" and "false"/"f" are read as 1 and 0.
func ParseValue(raw string) (uint16, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case "true", "t":
		return 1, nil
	case "false", "f":
		return 0, nil
	}
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidScore, raw)
	}
	return uint16(v), nil
}

// ParseClaim parses a claim answer for category c. Besides yes/no words the
// category's own award is accepted as a successful claim.
func ParseClaim(c Category, raw string) (bool, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case "true", "t", "1", "yes", "y", "+":
		return true, nil
	case "false", "f", "0", "no", "n", "x", "-":
		return false, nil
	}
	if v, err := strconv.ParseUint(s, 10, 16); err == nil && c.IsClaim() && uint16(v) == c.Award() {
		return true, nil
	}
	return false, fmt.Errorf("%w: %q is not a claim answer", ErrInvalidScore, raw)
}

// BuildInput turns a raw value into a complete input for c. An empty value
// or "-" clears number and free-score categories.
func BuildInput(c Category, raw string) (Input, error) {
	if !c.Valid() {
		return Input{}, fmt.Errorf("%w: %d", ErrInvalidCategory, int(c))
	}
	if c.IsClaim() {
		claimed, err := ParseClaim(c, raw)
		if err != nil {
			return Input{}, err
		}
		return Claim(c, claimed), nil
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "-" {
		return Clear(c), nil
	}
	v, err := ParseValue(trimmed)
	if err != nil {
		return Input{}, err
	}
	return Score(c, v), nil
}
