package players

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/yachtscore/internal/score"
)

// ErrInvalidDocument is returned when a document does not describe a registry.
var ErrInvalidDocument = errors.New("invalid scoreboard document")

// BoardDocument is the persisted form of a scoreboard.
type BoardDocument struct {
	Numbers        []*uint16 `json:"numbers" yaml:"numbers"`
	LeftToGetBonus uint16    `json:"left_to_get_bonus" yaml:"left_to_get_bonus"`
	Bonus          uint16    `json:"bonus" yaml:"bonus"`
	Choice         *uint16   `json:"choice" yaml:"choice"`
	FullHouse      *uint16   `json:"full_house" yaml:"full_house"`
	FourOfKind     *uint16   `json:"four_of_kind" yaml:"four_of_kind"`
	SmallStraight  *uint16   `json:"small_straight" yaml:"small_straight"`
	LargeStraight  *uint16   `json:"large_straight" yaml:"large_straight"`
	Yacht          *uint16   `json:"yacht" yaml:"yacht"`
	TotalScore     uint16    `json:"total_score" yaml:"total_score"`
}

// Document maps player names to their persisted scoreboards.
type Document map[string]BoardDocument

// NewBoardDocument converts a scoreboard to its persisted form.
func NewBoardDocument(sb score.Scoreboard) BoardDocument {
	doc := BoardDocument{
		Numbers:        make([]*uint16, len(sb.Numbers)),
		LeftToGetBonus: sb.LeftToBonus,
		Bonus:          sb.Bonus,
		Choice:         sb.Choice.Ptr(),
		FullHouse:      sb.FullHouse.Ptr(),
		FourOfKind:     sb.FourOfKind.Ptr(),
		SmallStraight:  sb.SmallStraight.Ptr(),
		LargeStraight:  sb.LargeStraight.Ptr(),
		Yacht:          sb.Yacht.Ptr(),
		TotalScore:     sb.TotalScore,
	}
	for i, n := range sb.Numbers {
		doc.Numbers[i] = n.Ptr()
	}
	return doc
}

// Scoreboard rebuilds a scoreboard from its persisted form. Stored derived
// fields are ignored and recomputed.
func (d BoardDocument) Scoreboard() (score.Scoreboard, error) {
	if len(d.Numbers) != 6 {
		return score.Scoreboard{}, fmt.Errorf("numbers must have 6 entries, got %d", len(d.Numbers))
	}
	sb := score.NewScoreboard()
	for i, n := range d.Numbers {
		sb.Apply(inputFor(score.Category(i), n))
	}
	sb.Apply(inputFor(score.Choice, d.Choice))
	sb.Apply(inputFor(score.FullHouse, d.FullHouse))
	sb.Apply(inputFor(score.FourOfKind, d.FourOfKind))

	claims := []struct {
		c score.Category
		v *uint16
	}{
		{score.SmallStraight, d.SmallStraight},
		{score.LargeStraight, d.LargeStraight},
		{score.Yacht, d.Yacht},
	}
	for _, cl := range claims {
		if cl.v == nil {
			continue
		}
		switch *cl.v {
		case 0:
			sb.Apply(score.Claim(cl.c, false))
		case cl.c.Award():
			sb.Apply(score.Claim(cl.c, true))
		default:
			return score.Scoreboard{}, fmt.Errorf("%s must be 0 or %d, got %d", cl.c, cl.c.Award(), *cl.v)
		}
	}
	return sb, nil
}

func inputFor(c score.Category, v *uint16) score.Input {
	if v == nil {
		return score.Clear(c)
	}
	return score.Score(c, *v)
}

// Document returns the persisted form of every player.
func (r *Registry) Document() Document {
	entries := r.Entries()
	doc := make(Document, len(entries))
	for _, e := range entries {
		doc[e.Name] = NewBoardDocument(e.Board)
	}
	return doc
}

// Decode builds a new registry from doc. Players are ordered by name.
func Decode(doc Document) (*Registry, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: document is empty", ErrInvalidDocument)
	}
	names := make([]string, 0, len(doc))
	for name := range doc {
		names = append(names, name)
	}
	sort.Strings(names)

	reg := New()
	for _, name := range names {
		if strings.TrimSpace(name) != name || name == "" {
			return nil, fmt.Errorf("%w: bad player name %q", ErrInvalidDocument, name)
		}
		sb, err := doc[name].Scoreboard()
		if err != nil {
			return nil, fmt.Errorf("%w: player %q: %v", ErrInvalidDocument, name, err)
		}
		*reg.addLocked(name) = sb
	}
	return reg, nil
}

// MarshalJSON implements json.Marshaler.
func (r *Registry) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Document())
}

// UnmarshalJSON implements json.Unmarshaler. The registry is only replaced
// when the whole document is valid.
func (r *Registry) UnmarshalJSON(data []byte) error {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return r.replaceFrom(doc)
}

// MarshalYAML implements yaml.Marshaler.
func (r *Registry) MarshalYAML() (interface{}, error) {
	return r.Document(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *Registry) UnmarshalYAML(node *yaml.Node) error {
	var doc Document
	if err := node.Decode(&doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return r.replaceFrom(doc)
}

func (r *Registry) replaceFrom(doc Document) error {
	loaded, err := Decode(doc)
	if err != nil {
		return err
	}
	r.Replace(loaded)
	return nil
}
