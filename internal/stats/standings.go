// Package stats ranks players and renders standings.
package stats

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/verte-zerg/yachtscore/internal/players"
)

// ErrInvalidSort is returned for an unknown sort mode.
var ErrInvalidSort = errors.New("invalid sort mode")

// SortMode orders board columns.
type SortMode string

// Sort modes.
const (
	SortAdded SortMode = "added"
	SortName  SortMode = "name"
	SortTotal SortMode = "total"
)

// ParseSortMode validates a sort mode. Empty means SortAdded.
func ParseSortMode(value string) (SortMode, error) {
	switch mode := SortMode(strings.ToLower(strings.TrimSpace(value))); mode {
	case "":
		return SortAdded, nil
	case SortAdded, SortName, SortTotal:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: %q (expected added, name or total)", ErrInvalidSort, value)
	}
}

// SortEntries returns a sorted copy of entries. SortTotal puts the highest
// total first; ties fall back to name order.
func SortEntries(entries []players.Entry, mode SortMode) []players.Entry {
	out := append([]players.Entry(nil), entries...)
	switch mode {
	case SortName:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Name < out[j].Name
		})
	case SortTotal:
		sort.SliceStable(out, func(i, j int) bool {
			return byTotal(out[i], out[j])
		})
	}
	return out
}

func byTotal(a, b players.Entry) bool {
	if a.Board.TotalScore == b.Board.TotalScore {
		return a.Name < b.Name
	}
	return a.Board.TotalScore > b.Board.TotalScore
}

// Standing is one ranked player.
type Standing struct {
	Rank   int
	Name   string
	Total  uint16
	Bonus  uint16
	Filled int
}

// Standings ranks players by total. Equal totals share a rank and the next
// rank skips accordingly (1, 1, 3).
func Standings(entries []players.Entry) []Standing {
	sorted := SortEntries(entries, SortTotal)
	out := make([]Standing, 0, len(sorted))
	for i, e := range sorted {
		rank := i + 1
		if i > 0 && e.Board.TotalScore == sorted[i-1].Board.TotalScore {
			rank = out[i-1].Rank
		}
		out = append(out, Standing{
			Rank:   rank,
			Name:   e.Name,
			Total:  e.Board.TotalScore,
			Bonus:  e.Board.Bonus,
			Filled: e.Board.Filled(),
		})
	}
	return out
}

// Leader returns the top-ranked player. Ties go to the first name.
func Leader(entries []players.Entry) (Standing, bool) {
	standings := Standings(entries)
	if len(standings) == 0 {
		return Standing{}, false
	}
	return standings[0], true
}

// RenderStandings prints the standings table.
func RenderStandings(w io.Writer, standings []Standing) error {
	if len(standings) == 0 {
		_, err := fmt.Fprintln(w, "No players yet.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Standings"); err != nil {
		return err
	}
	headers := []string{"Rank", "Player", "Total", "Bonus", "Filled"}
	rows := make([][]string, 0, len(standings))
	for _, s := range standings {
		rows = append(rows, []string{
			strconv.Itoa(s.Rank),
			s.Name,
			strconv.Itoa(int(s.Total)),
			strconv.Itoa(int(s.Bonus)),
			fmt.Sprintf("%d/12", s.Filled),
		})
	}
	rightAlign := map[int]bool{0: true, 2: true, 3: true, 4: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
