package score

import "fmt"

// Input is a category write: which slot and the value to put there.
//
// Number and free-score categories carry an optional value. An Input made
// with Select carries none yet and can be completed later with Inject.
// Claim categories carry a boolean instead.
type Input struct {
	category Category
	value    Slot
	claimed  bool
}

// Select returns an unfilled input for c.
func Select(c Category) Input {
	return Input{category: c}
}

// Score returns a filled input for c. For claim categories any non-zero
// value counts as a successful claim.
func Score(c Category, v uint16) Input {
	if c.IsClaim() {
		return Claim(c, v != 0)
	}
	return Input{category: c, value: Some(v)}
}

// Claim returns an input for a claim category.
func Claim(c Category, claimed bool) Input {
	return Input{category: c, claimed: claimed}
}

// Fail marks c as explicitly scored zero.
func Fail(c Category) Input {
	if c.IsClaim() {
		return Claim(c, false)
	}
	return Score(c, 0)
}

// Clear returns an input that unsets a number or free-score category.
// Claim categories cannot be unset, so Clear on them records a failed claim.
func Clear(c Category) Input {
	if c.IsClaim() {
		return Fail(c)
	}
	return Input{category: c}
}

// Inject returns a copy carrying v. It is a no-op if the input already
// carries a value or belongs to a claim category.
func (in Input) Inject(v uint16) Input {
	if in.category.IsClaim() || in.value.Set || !in.category.Valid() {
		return in
	}
	in.value = Some(v)
	return in
}

// Category returns the slot the input writes.
func (in Input) Category() Category {
	return in.category
}

// Value returns the carried value of a number or free-score input.
func (in Input) Value() Slot {
	return in.value
}

// Claimed reports the carried flag of a claim input.
func (in Input) Claimed() bool {
	return in.claimed
}

// Filled reports whether the input is complete. Claim inputs always are.
func (in Input) Filled() bool {
	return in.category.IsClaim() || in.value.Set
}

func (in Input) String() string {
	if in.category.IsClaim() {
		return fmt.Sprintf("%s(%t)", in.category, in.claimed)
	}
	return fmt.Sprintf("%s(%s)", in.category, in.value)
}
