package players

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/verte-zerg/yachtscore/internal/score"
)

func mustAdd(t *testing.T, r *Registry, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := r.AddPlayer(name); err != nil {
			t.Fatalf("add %q: %v", name, err)
		}
	}
}

func mustApply(t *testing.T, r *Registry, name string, in score.Input) {
	t.Helper()
	if err := r.ApplyScore(name, in); err != nil {
		t.Fatalf("apply %s to %q: %v", in, name, err)
	}
}

func TestNewRegistryIsEmpty(t *testing.T) {
	r := New()
	if !r.IsEmpty() || r.Len() != 0 {
		t.Fatalf("expected empty registry")
	}
	if len(r.Entries()) != 0 {
		t.Fatalf("expected no entries")
	}
}

func TestAliceScenario(t *testing.T) {
	r := New()
	mustAdd(t, r, "Alice")
	mustApply(t, r, "Alice", score.Score(score.Ones, 3))
	mustApply(t, r, "Alice", score.Score(score.Sixes, 6))

	sb, _ := r.Get("Alice")
	if sb.NumbersSum != 9 || sb.Bonus != 0 || sb.TotalScore != 9 {
		t.Fatalf("unexpected board after numbers: %+v", sb)
	}

	mustApply(t, r, "Alice", score.Score(score.Choice, 20))
	sb, _ = r.Get("Alice")
	if sb.TotalScore != 29 {
		t.Fatalf("expected 29, got %d", sb.TotalScore)
	}

	mustApply(t, r, "Alice", score.Claim(score.SmallStraight, true))
	sb, _ = r.Get("Alice")
	if sb.TotalScore != 44 {
		t.Fatalf("expected 44, got %d", sb.TotalScore)
	}

	// 3 + 6 + 9 + 12 + 15 + 18 = 63
	mustApply(t, r, "Alice", score.Score(score.Twos, 6))
	mustApply(t, r, "Alice", score.Score(score.Threes, 9))
	mustApply(t, r, "Alice", score.Score(score.Fours, 12))
	mustApply(t, r, "Alice", score.Score(score.Fives, 15))
	mustApply(t, r, "Alice", score.Score(score.Sixes, 18))
	sb, _ = r.Get("Alice")
	if sb.NumbersSum != 63 || sb.Bonus != score.BonusScore || sb.LeftToBonus != 0 {
		t.Fatalf("expected bonus earned, got %+v", sb)
	}
	if sb.TotalScore != 63+35+20+15 {
		t.Fatalf("expected total %d, got %d", 63+35+20+15, sb.TotalScore)
	}
}

func TestApplyScoreUnknownPlayer(t *testing.T) {
	r := New()
	mustAdd(t, r, "Alice")
	before := r.Entries()

	err := r.ApplyScore("Bob", score.Score(score.Ones, 3))
	if !errors.Is(err, ErrUnknownPlayer) {
		t.Fatalf("expected ErrUnknownPlayer, got %v", err)
	}
	if r.Has("Bob") {
		t.Fatalf("apply must not create Bob")
	}
	if diff := cmp.Diff(before, r.Entries()); diff != "" {
		t.Fatalf("registry changed (-before +after):\n%s", diff)
	}
}

func TestReAddResetsScoreboard(t *testing.T) {
	r := New()
	mustAdd(t, r, "X", "Y")
	mustApply(t, r, "X", score.Claim(score.Yacht, true))
	mustAdd(t, r, "X")

	sb, ok := r.Get("X")
	if !ok {
		t.Fatalf("expected X to exist")
	}
	if diff := cmp.Diff(score.NewScoreboard(), sb); diff != "" {
		t.Fatalf("expected default scoreboard (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"X", "Y"}, r.Names()); diff != "" {
		t.Fatalf("re-add must keep position (-want +got):\n%s", diff)
	}
}

func TestAddPlayerRejectsEmptyName(t *testing.T) {
	r := New()
	if err := r.AddPlayer("   "); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if !r.IsEmpty() {
		t.Fatalf("expected registry to stay empty")
	}
}

func TestRemovePlayer(t *testing.T) {
	r := New()
	mustAdd(t, r, "Alice", "Bob", "Cara")

	if r.RemovePlayer("Dave") {
		t.Fatalf("expected false for unknown player")
	}
	if r.Len() != 3 {
		t.Fatalf("expected count unchanged, got %d", r.Len())
	}
	if !r.RemovePlayer("Bob") {
		t.Fatalf("expected Bob to be removed")
	}
	if r.Len() != 2 {
		t.Fatalf("expected 2 players, got %d", r.Len())
	}
	if diff := cmp.Diff([]string{"Alice", "Cara"}, r.Names()); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
	if r.RemovePlayer("Bob") {
		t.Fatalf("second removal must report false")
	}
}

func TestClearAllScoresKeepsNames(t *testing.T) {
	r := New()
	mustAdd(t, r, "Alice", "Bob")
	mustApply(t, r, "Alice", score.Score(score.Choice, 25))
	mustApply(t, r, "Bob", score.Claim(score.LargeStraight, true))

	r.ClearAllScores()

	if diff := cmp.Diff([]string{"Alice", "Bob"}, r.Names()); diff != "" {
		t.Fatalf("names changed (-want +got):\n%s", diff)
	}
	for _, e := range r.Entries() {
		if diff := cmp.Diff(score.NewScoreboard(), e.Board); diff != "" {
			t.Fatalf("%s not reset (-want +got):\n%s", e.Name, diff)
		}
	}
}

func TestTotalInvariantAcrossSequence(t *testing.T) {
	r := New()
	mustAdd(t, r, "P")
	inputs := []score.Input{
		score.Score(score.Fives, 20),
		score.Score(score.FourOfKind, 24),
		score.Claim(score.Yacht, true),
		score.Score(score.Sixes, 30),
		score.Score(score.Fours, 16),
		score.Clear(score.Fives),
		score.Score(score.FullHouse, 28),
		score.Fail(score.LargeStraight),
		score.Score(score.Fives, 25),
	}
	for _, in := range inputs {
		mustApply(t, r, "P", in)
		sb, _ := r.Get("P")
		want := sb.NumbersSum + sb.Bonus +
			sb.Choice.Or(0) + sb.FullHouse.Or(0) + sb.FourOfKind.Or(0) +
			sb.SmallStraight.Or(0) + sb.LargeStraight.Or(0) + sb.Yacht.Or(0)
		if sb.TotalScore != want {
			t.Fatalf("after %s: total %d, expected %d", in, sb.TotalScore, want)
		}
		wantBonus := uint16(0)
		if sb.NumbersSum >= score.BonusLimit {
			wantBonus = score.BonusScore
		}
		if sb.Bonus != wantBonus {
			t.Fatalf("after %s: bonus %d, expected %d", in, sb.Bonus, wantBonus)
		}
	}
}

func TestEntriesAreSnapshots(t *testing.T) {
	r := New()
	mustAdd(t, r, "Alice")
	entries := r.Entries()
	mustApply(t, r, "Alice", score.Score(score.Choice, 10))
	if entries[0].Board.TotalScore != 0 {
		t.Fatalf("snapshot changed after mutation")
	}
}

func TestConcurrentApply(t *testing.T) {
	r := New()
	mustAdd(t, r, "A", "B")
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(v uint16) {
			defer wg.Done()
			_ = r.ApplyScore("A", score.Score(score.Choice, v))
		}(uint16(i))
		go func() {
			defer wg.Done()
			_ = r.Entries()
		}()
	}
	wg.Wait()
	sb, _ := r.Get("A")
	if sb.TotalScore != sb.Choice.Or(0) {
		t.Fatalf("inconsistent board after concurrent writes: %+v", sb)
	}
}

func TestReplace(t *testing.T) {
	r := New()
	mustAdd(t, r, "Old")
	other := New()
	mustAdd(t, other, "New")
	mustApply(t, other, "New", score.Score(score.Ones, 2))

	r.Replace(other)
	if r.Has("Old") || !r.Has("New") {
		t.Fatalf("expected registry replaced, got %v", r.Names())
	}
	mustApply(t, other, "New", score.Score(score.Ones, 5))
	sb, _ := r.Get("New")
	if sb.TotalScore != 2 {
		t.Fatalf("replace must copy boards, got total %d", sb.TotalScore)
	}
}
