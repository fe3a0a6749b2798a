package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/yachtscore/internal/players"
	"github.com/verte-zerg/yachtscore/internal/score"
	"github.com/verte-zerg/yachtscore/internal/stats"
	"github.com/verte-zerg/yachtscore/internal/store"
)

func TestExportFormatFor(t *testing.T) {
	tests := []struct {
		format string
		out    string
		want   string
	}{
		{out: "game.xlsx", want: "xlsx"},
		{out: "chart.PNG", want: "png"},
		{format: "png", out: "whatever.bin", want: "png"},
		{format: " XLSX ", out: "x", want: "xlsx"},
	}
	for _, tt := range tests {
		got, err := exportFormatFor(tt.format, tt.out)
		if err != nil {
			t.Fatalf("exportFormatFor(%q, %q): %v", tt.format, tt.out, err)
		}
		if got != tt.want {
			t.Fatalf("exportFormatFor(%q, %q) = %q, expected %q", tt.format, tt.out, got, tt.want)
		}
	}
	if _, err := exportFormatFor("", "game.csv"); err == nil {
		t.Fatalf("expected error for csv")
	}
}

func TestApplyConfigKeepsChangedFlags(t *testing.T) {
	var sortValue string
	var ascii bool
	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	cmd.Flags().StringVar(&sortValue, "sort", "added", "")
	cmd.Flags().BoolVar(&ascii, "ascii", false, "")
	if err := cmd.ParseFlags([]string{"--sort", "name"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	fromFile := "total"
	fileASCII := true
	applyStringConfig(cmd, "sort", &sortValue, &fromFile)
	applyBoolConfig(cmd, "ascii", &ascii, &fileASCII)
	if sortValue != "name" {
		t.Fatalf("expected flag value to win, got %q", sortValue)
	}
	if !ascii {
		t.Fatalf("expected config value for unchanged flag")
	}

	applyStringConfig(cmd, "sort", &sortValue, nil)
	if sortValue != "name" {
		t.Fatalf("nil config value must not change target")
	}
}

func TestWriteShow(t *testing.T) {
	reg := players.New()
	for _, name := range []string{"Alice", "Bob"} {
		if err := reg.AddPlayer(name); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	if err := reg.ApplyScore("Bob", score.Score(score.Choice, 22)); err != nil {
		t.Fatalf("apply: %v", err)
	}

	var buf bytes.Buffer
	if err := writeShow(&buf, reg, stats.SortTotal, true); err != nil {
		t.Fatalf("show: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "|*Bob |") {
		t.Fatalf("expected leader highlight first:\n%s", out)
	}
	if strings.Index(out, "Bob") > strings.Index(out, "Alice") {
		t.Fatalf("expected Bob before Alice when sorted by total:\n%s", out)
	}
	if !strings.Contains(out, "Standings") {
		t.Fatalf("expected standings:\n%s", out)
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	if got := expandHome("~/games/a.json"); got != "/home/tester/games/a.json" {
		t.Fatalf("unexpected path %q", got)
	}
	if got := expandHome("/abs/a.json"); got != "/abs/a.json" {
		t.Fatalf("unexpected path %q", got)
	}
}

func TestResetAutosave(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "yachtscore.db")
	st, err := store.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	reg := players.New()
	for _, name := range []string{"Alice", "Bob"} {
		if err := reg.AddPlayer(name); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	if err := st.SaveRegistry(ctx, reg.Entries()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	var buf bytes.Buffer
	if err := resetAutosave(ctx, path, &buf); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if got := buf.String(); got != "autosave cleared (2 players)\n" {
		t.Fatalf("unexpected output %q", got)
	}

	st, err = store.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() {
		_ = st.Close()
	}()
	n, err := st.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected empty autosave, got %d players", n)
	}
}
