// Package repl implements the line-oriented scorekeeping shell.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/verte-zerg/yachtscore/internal/board"
	"github.com/verte-zerg/yachtscore/internal/logging"
	"github.com/verte-zerg/yachtscore/internal/players"
	"github.com/verte-zerg/yachtscore/internal/savefile"
	"github.com/verte-zerg/yachtscore/internal/score"
	"github.com/verte-zerg/yachtscore/internal/stats"
)

// Prompt is printed before each command.
const Prompt = "yacht> "

var (
	errUnterminatedQuote = errors.New("unterminated quote")
	errMissingValue      = errors.New("missing value")
)

// Autosaver persists a snapshot after every change.
type Autosaver interface {
	SaveRegistry(ctx context.Context, entries []players.Entry) error
}

// Options configure a session.
type Options struct {
	// SavePath is used by save and load when no path is given.
	SavePath  string
	Sort      stats.SortMode
	ASCII     bool
	Autosaver Autosaver
	Logger    *slog.Logger
	// NoPrompt suppresses the prompt, for scripted input.
	NoPrompt bool
}

type session struct {
	ctx  context.Context
	out  io.Writer
	reg  *players.Registry
	opts Options
	log  *slog.Logger
}

type lineResult struct {
	line string
	err  error
}

// Run reads commands from in until quit, EOF or ctx is done. Command errors
// are printed and do not stop the loop. If in is an io.Closer it is closed
// on return, which releases the reader goroutine; a plain reader keeps it
// blocked until the next read returns.
func Run(ctx context.Context, in io.Reader, out io.Writer, reg *players.Registry, opts Options) error {
	s := &session{ctx: ctx, out: out, reg: reg, opts: opts, log: logging.OrDiscard(opts.Logger)}

	lines := make(chan lineResult)
	done := make(chan struct{})
	defer close(done)
	if c, ok := in.(io.Closer); ok {
		defer func() {
			if cerr := c.Close(); cerr != nil {
				// Best-effort close of the input.
				_ = cerr
			}
		}()
	}
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- lineResult{line: scanner.Text()}:
			case <-done:
				return
			}
		}
		if err := scanner.Err(); err != nil {
			select {
			case lines <- lineResult{err: err}:
			case <-done:
			}
		}
	}()

	for {
		s.prompt()
		select {
		case <-ctx.Done():
			return nil
		case res, ok := <-lines:
			if !ok {
				return nil
			}
			if res.err != nil {
				return fmt.Errorf("failed to read input: %w", res.err)
			}
			quit, err := s.exec(res.line)
			if err != nil {
				s.log.Debug("command failed", "line", res.line, "error", err)
				fmt.Fprintf(out, "error: %v\n", err)
			}
			if quit {
				return nil
			}
		}
	}
}

func (s *session) prompt() {
	if !s.opts.NoPrompt {
		fmt.Fprint(s.out, Prompt)
	}
}

func (s *session) exec(line string) (bool, error) {
	args, err := splitArgs(line)
	if err != nil {
		return false, err
	}
	if len(args) == 0 {
		return false, nil
	}
	verb, args := strings.ToLower(args[0]), args[1:]
	switch verb {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		s.help()
		return false, nil
	case "add":
		return false, s.add(args)
	case "del", "rm", "remove":
		return false, s.remove(args)
	case "clear":
		s.reg.ClearAllScores()
		fmt.Fprintln(s.out, "all scores cleared")
		s.autosave()
		return false, nil
	case "show":
		s.show()
		return false, nil
	case "rank":
		return false, stats.RenderStandings(s.out, stats.Standings(s.reg.Entries()))
	case "score", "set":
		return false, s.score(args)
	case "save":
		return false, s.save(args)
	case "load":
		return false, s.load(args)
	default:
		return false, fmt.Errorf("unknown command %q (try help)", verb)
	}
}

func (s *session) add(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: add NAME...")
	}
	for _, name := range args {
		if strings.TrimSpace(name) == "" {
			return players.ErrEmptyName
		}
	}
	for _, name := range args {
		if err := s.reg.AddPlayer(name); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "added %s\n", strings.TrimSpace(name))
		s.log.Info("player added", "player", name)
	}
	s.autosave()
	return nil
}

func (s *session) remove(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: del NAME")
	}
	if !s.reg.RemovePlayer(args[0]) {
		return fmt.Errorf("%w: %q", players.ErrUnknownPlayer, args[0])
	}
	fmt.Fprintf(s.out, "removed %s\n", args[0])
	s.log.Info("player removed", "player", args[0])
	s.autosave()
	return nil
}

func (s *session) score(args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return errors.New("usage: score NAME CATEGORY [VALUE]")
	}
	name := args[0]
	c, err := score.ParseCategory(args[1])
	if err != nil {
		return err
	}
	var in score.Input
	switch {
	case len(args) == 3:
		in, err = score.BuildInput(c, args[2])
		if err != nil {
			return err
		}
	case c.IsClaim():
		in = score.Claim(c, true)
	default:
		return fmt.Errorf("%w for %s", errMissingValue, c)
	}
	if err := s.reg.ApplyScore(name, in); err != nil {
		return err
	}
	sb, _ := s.reg.Get(name)
	fmt.Fprintf(s.out, "%s: %s = %s (total %d)\n", name, c.Label(), sb.Slot(c), sb.TotalScore)
	s.log.Info("score applied", "player", name, "input", in.String(), "total", sb.TotalScore)
	s.autosave()
	return nil
}

func (s *session) show() {
	entries := stats.SortEntries(s.reg.Entries(), s.opts.Sort)
	opts := board.Options{ASCII: s.opts.ASCII}
	if leader, ok := stats.Leader(entries); ok && leader.Total > 0 {
		opts.Highlight = leader.Name
	}
	fmt.Fprintln(s.out, board.Render(entries, opts))
}

func (s *session) path(args []string) (string, error) {
	switch {
	case len(args) > 1:
		return "", errors.New("expected at most one path")
	case len(args) == 1:
		return args[0], nil
	case s.opts.SavePath != "":
		return s.opts.SavePath, nil
	default:
		return "", errors.New("no path given and no default save file")
	}
}

func (s *session) save(args []string) error {
	path, err := s.path(args)
	if err != nil {
		return err
	}
	if err := savefile.Save(path, s.reg); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "saved %d players to %s\n", s.reg.Len(), path)
	s.log.Info("saved", "path", path)
	return nil
}

func (s *session) load(args []string) error {
	path, err := s.path(args)
	if err != nil {
		return err
	}
	loaded, err := savefile.Load(path)
	if err != nil {
		return err
	}
	s.reg.Replace(loaded)
	fmt.Fprintf(s.out, "loaded %d players from %s\n", s.reg.Len(), path)
	s.log.Info("loaded", "path", path)
	s.autosave()
	return nil
}

func (s *session) autosave() {
	if s.opts.Autosaver == nil {
		return
	}
	if err := s.opts.Autosaver.SaveRegistry(s.ctx, s.reg.Entries()); err != nil {
		s.log.Error("autosave failed", "error", err)
		fmt.Fprintf(s.out, "warning: autosave failed: %v\n", err)
	}
}

func (s *session) help() {
	fmt.Fprint(s.out, `Commands:
  add NAME...                  add players (re-adding resets a board)
  del NAME                     remove a player (also rm, remove)
  clear                        reset every score, keep players
  score NAME CATEGORY [VALUE]  record a score (also set)
  show                         print the board
  rank                         print the standings
  save [PATH]                  write the game to a .json or .yaml file
  load [PATH]                  replace the game from a file
  help                         show this message
  quit                         leave (also exit)

Categories: 1-6, c(hoice), h (full house), k (four of a kind),
s (small straight), l (large straight), y (yacht).
Claims take y/n or the award; no value means claimed. "-" clears a score.
`)
}

// splitArgs splits on whitespace. Double quotes group words and \" escapes
// a quote inside them.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		inQuote bool
		hasArg  bool
	)
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case inQuote && r == '\\' && i+1 < len(runes) && runes[i+1] == '"':
			cur.WriteRune('"')
			i++
		case r == '"':
			inQuote = !inQuote
			hasArg = true
		case !inQuote && (r == ' ' || r == '\t'):
			if hasArg {
				args = append(args, cur.String())
				cur.Reset()
				hasArg = false
			}
		default:
			cur.WriteRune(r)
			hasArg = true
		}
	}
	if inQuote {
		return nil, errUnterminatedQuote
	}
	if hasArg {
		args = append(args, cur.String())
	}
	return args, nil
}
