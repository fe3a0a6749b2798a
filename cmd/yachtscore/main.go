// Package main provides the CLI entrypoint for yachtscore.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/yachtscore/internal/board"
	"github.com/verte-zerg/yachtscore/internal/config"
	"github.com/verte-zerg/yachtscore/internal/export"
	"github.com/verte-zerg/yachtscore/internal/logging"
	"github.com/verte-zerg/yachtscore/internal/model"
	"github.com/verte-zerg/yachtscore/internal/players"
	"github.com/verte-zerg/yachtscore/internal/repl"
	"github.com/verte-zerg/yachtscore/internal/savefile"
	"github.com/verte-zerg/yachtscore/internal/stats"
	"github.com/verte-zerg/yachtscore/internal/store"
	"github.com/verte-zerg/yachtscore/internal/tui"
)

const (
	defaultSort     = "added"
	defaultLogLevel = "info"
	dotEnvPath      = ".env"
)

var (
	boardFile     string
	boardAutosave bool
	boardASCII    bool
	boardSort     string
	logLevel      string
	logFile       string

	exportOut    string
	exportFormat string

	qrOut  string
	qrSize int
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	rootCmd := newRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "yachtscore",
		Short:        "Terminal scorekeeper for the Yacht dice game",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         runBoardCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&boardFile, "file", "", "scoreboard file (.json or .yaml)")
	flags.BoolVar(&boardAutosave, "autosave", false, "save every change to the local database and restore it on start")
	flags.BoolVar(&boardASCII, "ascii", false, "draw the board with ASCII characters")
	flags.StringVar(&boardSort, "sort", defaultSort, "column order: added, name or total")
	flags.StringVar(&logLevel, "log-level", defaultLogLevel, "log level: debug, info, warn or error")
	flags.StringVar(&logFile, "log-file", "", "log file path")

	rootCmd.AddCommand(newReplCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newQRCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newResetAutosaveCmd())

	return rootCmd
}

// settings is the merged configuration plus whether a save file was asked for.
type settings struct {
	model.Config
	sort         stats.SortMode
	fileExplicit bool
}

// resolveSettings merges flags over environment over the config file over defaults.
func resolveSettings(cmd *cobra.Command) (settings, error) {
	if err := config.LoadDotEnv(dotEnvPath); err != nil {
		logErrf("failed to load %s: %v\n", dotEnvPath, err)
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return settings{}, fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.ApplyEnv(&fileCfg); err != nil {
		return settings{}, fmt.Errorf("invalid environment: %w", err)
	}

	fileExplicit := cmd.Flags().Changed("file") || fileCfg.Board.SaveFile != nil
	applyStringConfig(cmd, "file", &boardFile, fileCfg.Board.SaveFile)
	applyBoolConfig(cmd, "autosave", &boardAutosave, fileCfg.Board.Autosave)
	applyBoolConfig(cmd, "ascii", &boardASCII, fileCfg.Board.ASCII)
	applyStringConfig(cmd, "sort", &boardSort, fileCfg.Board.Sort)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-file", &logFile, fileCfg.Log.File)

	cfg := model.Config{
		SaveFile: expandHome(boardFile),
		Autosave: boardAutosave,
		DBPath:   config.DefaultDBPath(),
		ASCII:    boardASCII,
		Sort:     boardSort,
		LogLevel: logLevel,
		LogFile:  expandHome(logFile),
	}
	if strings.TrimSpace(cfg.SaveFile) == "" {
		cfg.SaveFile = config.DefaultSaveFilePath()
	}
	if strings.TrimSpace(cfg.LogFile) == "" {
		cfg.LogFile = config.DefaultLogPath()
	}
	mode, err := stats.ParseSortMode(cfg.Sort)
	if err != nil {
		return settings{}, err
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return settings{}, err
	}
	return settings{Config: cfg, sort: mode, fileExplicit: fileExplicit}, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func openLogger(cfg settings) (*slog.Logger, func()) {
	logger, closeFn, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		logErrf("failed to open log file: %v\n", err)
		return logging.Discard(), func() {}
	}
	return logger, func() {
		if cerr := closeFn(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
	}
}

// session holds what the interactive commands share: the game, the logger
// and the optional autosave store.
type session struct {
	cfg    settings
	reg    *players.Registry
	logger *slog.Logger
	store  *store.Store
	close  func()
}

func openSession(ctx context.Context, cmd *cobra.Command) (*session, error) {
	cfg, err := resolveSettings(cmd)
	if err != nil {
		return nil, err
	}
	logger, closeLog := openLogger(cfg)
	s := &session{cfg: cfg, reg: players.New(), logger: logger, close: closeLog}

	if cfg.Autosave {
		st, err := store.Open(cfg.DBPath)
		if err != nil {
			s.close()
			return nil, fmt.Errorf("failed to open db: %w", err)
		}
		s.store = st
		s.close = func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
			closeLog()
		}
	}

	if cfg.fileExplicit {
		loaded, err := savefile.Load(cfg.SaveFile)
		switch {
		case err == nil:
			s.reg.Replace(loaded)
			logger.Info("game loaded", "path", cfg.SaveFile, "players", s.reg.Len())
		case errors.Is(err, os.ErrNotExist):
			logger.Info("save file not found, starting a new game", "path", cfg.SaveFile)
		default:
			s.close()
			return nil, err
		}
		return s, nil
	}

	if s.store != nil {
		restored, err := s.store.LoadRegistry(ctx)
		if err != nil {
			logger.Error("failed to restore autosave", "error", err)
			logErrf("failed to restore autosave: %v\n", err)
			return s, nil
		}
		s.reg.Replace(restored)
		logger.Info("autosave restored", "players", s.reg.Len())
	}
	return s, nil
}

func runBoardCmd(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer s.close()

	opts := tui.Options{
		SavePath: s.cfg.SaveFile,
		Sort:     s.cfg.sort,
		ASCII:    s.cfg.ASCII,
		Logger:   s.logger,
	}
	if s.store != nil {
		opts.Autosaver = s.store
	}
	program := tea.NewProgram(tui.NewModel(s.reg, opts), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Keep score with typed commands",
		Args:  cobra.NoArgs,
		RunE:  runReplCmd,
	}
}

func runReplCmd(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer s.close()

	opts := repl.Options{
		SavePath: s.cfg.SaveFile,
		Sort:     s.cfg.sort,
		ASCII:    s.cfg.ASCII || !isTerminal(os.Stdout),
		Logger:   s.logger,
		NoPrompt: !isTerminal(os.Stdin),
	}
	if s.store != nil {
		opts.Autosaver = s.store
	}
	return repl.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), s.reg, opts)
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the board and standings of a saved game",
		Args:  cobra.NoArgs,
		RunE:  runShowCmd,
	}
}

func runShowCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	reg, err := savefile.Load(cfg.SaveFile)
	if err != nil {
		return err
	}
	ascii := cfg.ASCII || !isTerminal(os.Stdout)
	return writeShow(cmd.OutOrStdout(), reg, cfg.sort, ascii)
}

func writeShow(w io.Writer, reg *players.Registry, mode stats.SortMode, ascii bool) error {
	entries := stats.SortEntries(reg.Entries(), mode)
	opts := board.Options{ASCII: ascii}
	if leader, ok := stats.Leader(entries); ok && leader.Total > 0 {
		opts.Highlight = leader.Name
	}
	if _, err := fmt.Fprintln(w, board.Render(entries, opts)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return stats.RenderStandings(w, stats.Standings(entries))
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a saved game as a spreadsheet or chart",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVar(&exportOut, "out", "", "output path (.xlsx or .png)")
	cmd.Flags().StringVar(&exportFormat, "format", "", "xlsx or png (default: from --out extension)")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func exportFormatFor(format, out string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "" {
		f = strings.TrimPrefix(strings.ToLower(filepath.Ext(out)), ".")
	}
	switch f {
	case "xlsx", "png":
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (expected xlsx or png)", f)
	}
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	format, err := exportFormatFor(exportFormat, exportOut)
	if err != nil {
		return err
	}
	reg, err := savefile.Load(cfg.SaveFile)
	if err != nil {
		return err
	}
	entries := stats.SortEntries(reg.Entries(), cfg.sort)

	var buf bytes.Buffer
	switch format {
	case "png":
		err = export.WriteChartPNG(&buf, entries)
	default:
		err = export.WriteXLSX(&buf, entries)
	}
	if err != nil {
		return err
	}
	if err := writeOutput(exportOut, buf.Bytes()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", exportOut)
	return nil
}

func newQRCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qr",
		Short: "Encode a saved game as a QR code image",
		Args:  cobra.NoArgs,
		RunE:  runQRCmd,
	}
	cmd.Flags().StringVar(&qrOut, "out", "", "output PNG path")
	cmd.Flags().IntVar(&qrSize, "size", export.DefaultQRSize, "image size in pixels")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func runQRCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	reg, err := savefile.Load(cfg.SaveFile)
	if err != nil {
		return err
	}
	doc, err := json.Marshal(reg)
	if err != nil {
		return fmt.Errorf("failed to encode game: %w", err)
	}
	var buf bytes.Buffer
	if err := export.WriteQRCode(&buf, doc, qrSize); err != nil {
		return err
	}
	if err := writeOutput(qrOut, buf.Bytes()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", qrOut)
	return nil
}

func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(config.Template), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newResetAutosaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-autosave",
		Short: "Forget the autosaved game",
		Args:  cobra.NoArgs,
		RunE:  runResetAutosaveCmd,
	}
}

func runResetAutosaveCmd(cmd *cobra.Command, _ []string) error {
	return resetAutosave(cmd.Context(), config.DefaultDBPath(), cmd.OutOrStdout())
}

func resetAutosave(ctx context.Context, dbPath string, w io.Writer) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	n, err := st.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to read autosave: %w", err)
	}
	if err := st.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear autosave: %w", err)
	}
	fmt.Fprintf(w, "autosave cleared (%d players)\n", n)
	return nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
