// Package board draws the scoreboard grid shown by the TUI and the show command.
package board

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/yachtscore/internal/players"
	"github.com/verte-zerg/yachtscore/internal/score"
)

const (
	// MaxNameWidth is the widest player name drawn before truncation.
	MaxNameWidth = 16
	// MinColumnWidth is the narrowest player column, borders excluded.
	MinColumnWidth = 5
)

// Options tweak rendering.
type Options struct {
	// ASCII draws borders with +-| instead of box-drawing runes.
	ASCII bool
	// Highlight marks the named player's header with a star.
	Highlight string
}

type charset struct {
	h, v             string
	topL, topM, topR string
	midL, midM, midR string
	botL, botM, botR string
}

var (
	boxChars = charset{
		h: "─", v: "│",
		topL: "┌", topM: "┬", topR: "┐",
		midL: "├", midM: "┼", midR: "┤",
		botL: "└", botM: "┴", botR: "┘",
	}
	asciiChars = charset{
		h: "-", v: "|",
		topL: "+", topM: "+", topR: "+",
		midL: "+", midM: "+", midR: "+",
		botL: "+", botM: "+", botR: "+",
	}
)

type rowKind int

const (
	rowName rowKind = iota
	rowSeparator
	rowCategory
	rowLeftToBonus
	rowBonus
	rowTotal
)

type row struct {
	kind     rowKind
	category score.Category
}

// layout lists the grid rows between the top and bottom borders.
var layout = buildLayout()

func buildLayout() []row {
	rows := []row{{kind: rowName}, {kind: rowSeparator}}
	for _, c := range score.Categories() {
		if c == score.Choice {
			rows = append(rows,
				row{kind: rowSeparator},
				row{kind: rowLeftToBonus},
				row{kind: rowBonus},
				row{kind: rowSeparator},
			)
		}
		rows = append(rows, row{kind: rowCategory, category: c})
	}
	return append(rows,
		row{kind: rowSeparator},
		row{kind: rowSeparator},
		row{kind: rowTotal},
	)
}

// Label returns the row label drawn for a category, including its shortcut key.
func Label(c score.Category) string {
	if c.IsNumber() {
		return fmt.Sprintf("%-6s (%c)", c.Label(), c.Key())
	}
	return fmt.Sprintf("%-14s (%c)", c.Label(), c.Key())
}

func rowLabel(r row) string {
	switch r.kind {
	case rowName:
		return "Name"
	case rowLeftToBonus:
		return "Left to get bonus"
	case rowBonus:
		return "Bonus"
	case rowTotal:
		return "Total"
	case rowCategory:
		return Label(r.category)
	default:
		return ""
	}
}

func cellText(r row, sb score.Scoreboard) string {
	switch r.kind {
	case rowLeftToBonus:
		return strconv.Itoa(int(sb.LeftToBonus))
	case rowBonus:
		return strconv.Itoa(int(sb.Bonus))
	case rowTotal:
		return strconv.Itoa(int(sb.TotalScore))
	case rowCategory:
		return sb.Slot(r.category).String()
	default:
		return ""
	}
}

// DisplayName truncates name to MaxNameWidth cells.
func DisplayName(name string) string {
	if runewidth.StringWidth(name) <= MaxNameWidth {
		return name
	}
	return runewidth.Truncate(name, MaxNameWidth, "…")
}

// ColumnWidth returns the inner width of a player column.
func ColumnWidth(name string) int {
	w := runewidth.StringWidth(DisplayName(name)) + 2
	if w < MinColumnWidth {
		return MinColumnWidth
	}
	return w
}

// Render draws the grid for entries in the order given.
func Render(entries []players.Entry, opts Options) string {
	cs := boxChars
	if opts.ASCII {
		cs = asciiChars
	}

	labelWidth := 0
	for _, r := range layout {
		if w := runewidth.StringWidth(rowLabel(r)); w > labelWidth {
			labelWidth = w
		}
	}
	widths := make([]int, 0, len(entries)+1)
	widths = append(widths, labelWidth+2)
	for _, e := range entries {
		widths = append(widths, ColumnWidth(e.Name))
	}

	var b strings.Builder
	b.WriteString(border(widths, cs.topL, cs.topM, cs.topR, cs.h))
	for _, r := range layout {
		b.WriteByte('\n')
		if r.kind == rowSeparator {
			b.WriteString(border(widths, cs.midL, cs.midM, cs.midR, cs.h))
			continue
		}
		b.WriteString(cs.v)
		b.WriteString(" ")
		b.WriteString(padLeft(rowLabel(r), labelWidth))
		b.WriteString(" ")
		b.WriteString(cs.v)
		for i, e := range entries {
			lead, text := " ", cellText(r, e.Board)
			if r.kind == rowName {
				text = DisplayName(e.Name)
				if opts.Highlight != "" && e.Name == opts.Highlight {
					lead = "*"
				}
			}
			b.WriteString(lead)
			b.WriteString(padRight(text, widths[i+1]-1))
			b.WriteString(cs.v)
		}
	}
	b.WriteByte('\n')
	b.WriteString(border(widths, cs.botL, cs.botM, cs.botR, cs.h))
	return b.String()
}

func border(widths []int, left, mid, right, h string) string {
	var b strings.Builder
	b.WriteString(left)
	for i, w := range widths {
		if i > 0 {
			b.WriteString(mid)
		}
		b.WriteString(strings.Repeat(h, w))
	}
	b.WriteString(right)
	return b.String()
}

func padLeft(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", width-w) + s
}

func padRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
