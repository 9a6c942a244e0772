// Package main provides the CLI entrypoint for tuivocab.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	clog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuivocab/internal/config"
	"github.com/verte-zerg/tuivocab/internal/game"
	"github.com/verte-zerg/tuivocab/internal/generator"
	"github.com/verte-zerg/tuivocab/internal/model"
	"github.com/verte-zerg/tuivocab/internal/stats"
	"github.com/verte-zerg/tuivocab/internal/statsui"
	"github.com/verte-zerg/tuivocab/internal/store"
	"github.com/verte-zerg/tuivocab/internal/tui"
	"github.com/verte-zerg/tuivocab/internal/vocab"
	"github.com/verte-zerg/tuivocab/internal/wordlist"
)

const (
	defaultLevel       = string(model.LevelBeginner)
	defaultWeakTop     = 8
	defaultWeakFactor  = 2.0
	defaultCurveWindow = 5
	defaultBoardLimit  = 10
)

var (
	playLevel      string
	playPlayer     string
	playFocusWeak  bool
	playWeakTop    int
	playWeakFactor float64
	playSeed       int64
	playGuest      bool

	verbose bool

	modesGroup string

	statsPlain  bool
	statsMode   string
	statsSince  string
	statsLast   int
	statsWindow int

	boardLimit int

	wordsLevel  string
	wordsTopic  string
	wordsSearch string
	wordsSort   string
	wordsPage   int

	studyLevel string
	studyTopic string
	studyWord  string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuivocab",
		Short:         "English-Vietnamese vocabulary games in the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runPlayCmd,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	addPlayFlags(rootCmd)

	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newModesCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newLeaderboardCmd())
	rootCmd.AddCommand(newWordsCmd())
	rootCmd.AddCommand(newStudyCmd())
	rootCmd.AddCommand(newFavoriteCmd())
	rootCmd.AddCommand(newConfigCmd())
	return rootCmd
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&playLevel, "level", defaultLevel, "vocabulary level (beginner, intermediate, advanced)")
	cmd.Flags().StringVar(&playPlayer, "player", "", "name recorded on the leaderboard")
	cmd.Flags().BoolVar(&playFocusWeak, "focus-weak", false, "draw weak words more often")
	cmd.Flags().IntVar(&playWeakTop, "weak-top", defaultWeakTop, "number of weak words to focus on")
	cmd.Flags().Float64Var(&playWeakFactor, "weak-factor", defaultWeakFactor, "extra weight for weak words")
	cmd.Flags().Int64Var(&playSeed, "seed", 0, "random seed (0 picks one)")
	cmd.Flags().BoolVar(&playGuest, "guest", false, "play without saving scores")
}

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play [mode]",
		Short: "Play a game (menu when no mode is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlayCmd,
	}
	addPlayFlags(cmd)
	return cmd
}

func runPlayCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "level", &playLevel, fileCfg.Game.Level)
	applyStringConfig(cmd, "player", &playPlayer, fileCfg.Game.Player)
	applyBoolConfig(cmd, "focus-weak", &playFocusWeak, fileCfg.Game.FocusWeak)
	applyIntConfig(cmd, "weak-top", &playWeakTop, fileCfg.Game.WeakTop)
	applyFloatConfig(cmd, "weak-factor", &playWeakFactor, fileCfg.Game.WeakFactor)
	applyInt64Config(cmd, "seed", &playSeed, fileCfg.Game.Seed)

	cfg := model.Config{
		Level:      playLevel,
		Player:     strings.TrimSpace(playPlayer),
		FocusWeak:  playFocusWeak,
		WeakTop:    playWeakTop,
		WeakFactor: playWeakFactor,
		Seed:       playSeed,
	}
	if fileCfg.Vocab.Corpus != nil {
		cfg.CorpusPath = *fileCfg.Vocab.Corpus
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	if playGuest && cfg.FocusWeak {
		return fmt.Errorf("--focus-weak needs saved study progress and cannot be combined with --guest")
	}
	level, _ := model.ParseLevel(cfg.Level)

	logger, closeLog, err := newLogger(fileCfg.Log, true)
	if err != nil {
		return err
	}
	defer closeLog()

	words, err := loadCorpus(cfg.CorpusPath)
	if err != nil {
		return err
	}

	opts := []game.Option{
		game.WithLogger(logger),
		game.WithLevel(level),
	}
	if cfg.Seed != 0 {
		opts = append(opts, game.WithGenerator(generator.NewWithSeed(cfg.Seed)))
	}
	if cfg.Player != "" {
		opts = append(opts, game.WithPlayer(cfg.Player))
	}

	var statsStore *stats.Store
	var lib *vocab.Library
	if playGuest {
		statsStore = stats.NewStore(stats.NewMemoryKV(), logger)
		lib = vocab.NewLibrary(words, nil, vocab.WithLogger(logger))
	} else {
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer closeStore(st)
		statsStore = stats.NewStore(st, logger)
		lib = vocab.NewLibrary(words, st, vocab.WithLogger(logger))
		opts = append(opts, game.WithHistory(st))
		if cfg.FocusWeak {
			if weightFn := weakWeights(lib, cfg, logger); weightFn != nil {
				opts = append(opts, game.WithWeights(weightFn))
			}
		}
	}

	engine := game.New(lib, statsStore, opts...)
	ui := tui.NewModel(engine, logger)
	if len(args) == 1 {
		if err := ui.Start(model.ModeID(args[0])); err != nil {
			if errors.Is(err, game.ErrInvalidMode) {
				return fmt.Errorf("%w (run: tuivocab modes)", err)
			}
			return err
		}
	}
	program := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func weakWeights(lib *vocab.Library, cfg model.Config, logger *clog.Logger) func([]model.WordRecord) []float64 {
	progress, err := lib.Progress(context.Background())
	if err != nil {
		logger.Error("failed to load study progress", "err", err)
		return nil
	}
	if len(stats.SelectWeakWords(progress, cfg.WeakTop)) == 0 {
		logErrln("no study progress available for weak-word focus yet; using uniform draws")
		return nil
	}
	return func(words []model.WordRecord) []float64 {
		return stats.WeakWeights(words, progress, cfg.WeakTop, cfg.WeakFactor)
	}
}

func newModesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modes",
		Short: "List game modes with their rules and records",
		Args:  cobra.NoArgs,
		RunE:  runModesCmd,
	}
	cmd.Flags().StringVar(&modesGroup, "group", string(game.GroupAll), "mode group (all, beginner, intermediate, advanced)")
	return cmd
}

func runModesCmd(cmd *cobra.Command, _ []string) error {
	registry := game.DefaultRegistry()
	modes, err := registry.ModesForGroup(game.Group(strings.ToLower(strings.TrimSpace(modesGroup))))
	if err != nil {
		return fmt.Errorf("invalid --group: %w", err)
	}
	env, err := openEnv(false)
	if err != nil {
		return err
	}
	defer env.close()
	agg, err := env.stats.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}

	rows := make([][]string, 0, len(modes))
	for _, mode := range modes {
		strategy, _ := registry.Lookup(mode)
		rules := strategy.Rules()
		length := fmt.Sprintf("%d questions", game.SessionLength)
		if !rules.TurnBased {
			length = rules.Duration.String()
		}
		stat := agg.Stat(mode)
		rows = append(rows, []string{
			string(mode),
			length,
			fmt.Sprintf("+%d", rules.Reward),
			fmt.Sprintf("-%d", rules.Penalty),
			strconv.Itoa(stat.HighScore),
			strconv.Itoa(stat.Plays),
		})
	}
	headers := []string{"Mode", "Length", "Reward", "Penalty", "High Score", "Plays"}
	return stats.RenderTable(cmd.OutOrStdout(), "", headers, rows, map[int]bool{2: true, 3: true, 4: true, 5: true})
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a plain-text report instead of the TUI")
	cmd.Flags().StringVar(&statsMode, "mode", "", "mode filter for history")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit history to last N sessions")
	cmd.Flags().IntVar(&statsWindow, "window", defaultCurveWindow, "moving average window")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	if statsWindow < 1 {
		return fmt.Errorf("--window must be >= 1")
	}
	registry := game.DefaultRegistry()
	mode := model.ModeID(strings.TrimSpace(statsMode))
	if _, ok := registry.Lookup(mode); mode != "" && !ok {
		return fmt.Errorf("invalid --mode: %w", &game.InvalidModeError{Mode: mode})
	}
	cfg := model.StatsConfig{
		Mode:        mode,
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsWindow,
	}

	env, err := openEnv(!statsPlain)
	if err != nil {
		return err
	}
	defer env.close()

	if !statsPlain {
		ui := statsui.NewModel(env.store, env.stats, env.library, cfg, registry.Modes())
		program := tea.NewProgram(ui, tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run stats TUI: %w", err)
		}
		return nil
	}

	report, err := stats.BuildReport(cmd.Context(), env.store, env.stats, cfg)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, report.Aggregate); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderModeTable(out, report.Aggregate, registry.Modes()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderLeaderboard(out, report.Leaderboard, defaultBoardLimit); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderHistory(out, report.Sessions, cfg.CurveWindow, stats.TerminalWidth()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newLeaderboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the leaderboard",
		Args:  cobra.NoArgs,
		RunE:  runLeaderboardCmd,
	}
	cmd.Flags().IntVar(&boardLimit, "limit", defaultBoardLimit, "number of entries to show")
	return cmd
}

func runLeaderboardCmd(cmd *cobra.Command, _ []string) error {
	if boardLimit <= 0 {
		return fmt.Errorf("--limit must be > 0")
	}
	env, err := openEnv(false)
	if err != nil {
		return err
	}
	defer env.close()
	entries, err := env.stats.LoadLeaderboard(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load leaderboard: %w", err)
	}
	return stats.RenderLeaderboard(cmd.OutOrStdout(), entries, boardLimit)
}

func newWordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words",
		Short: "Browse the vocabulary",
		Args:  cobra.NoArgs,
		RunE:  runWordsCmd,
	}
	cmd.Flags().StringVar(&wordsLevel, "level", "all", "level filter (all, beginner, intermediate, advanced)")
	cmd.Flags().StringVar(&wordsTopic, "topic", "", "topic filter")
	cmd.Flags().StringVar(&wordsSearch, "search", "", "search English or Vietnamese text")
	cmd.Flags().StringVar(&wordsSort, "sort", string(vocab.SortAlphabetical), "sort order (alphabetical, accuracy, recent, favorites)")
	cmd.Flags().IntVar(&wordsPage, "page", 1, "page number")
	return cmd
}

func runWordsCmd(cmd *cobra.Command, _ []string) error {
	var level model.Level
	if wordsLevel != "" && wordsLevel != "all" {
		parsed, ok := model.ParseLevel(wordsLevel)
		if !ok {
			return fmt.Errorf("--level must be one of: all, beginner, intermediate, advanced")
		}
		level = parsed
	}
	env, err := openEnv(false)
	if err != nil {
		return err
	}
	defer env.close()

	page, err := env.library.Browse(cmd.Context(), vocab.Query{
		Level:  level,
		Topic:  wordsTopic,
		Search: wordsSearch,
		Sort:   vocab.SortKey(wordsSort),
		Page:   wordsPage,
	})
	if err != nil {
		return fmt.Errorf("failed to browse words: %w", err)
	}
	rows := make([][]string, 0, len(page.Entries))
	for _, e := range page.Entries {
		star := ""
		if e.Favorite {
			star = "*"
		}
		acc := "-"
		if e.Studied {
			acc = fmt.Sprintf("%.0f%%", e.Progress.Accuracy()*100)
		}
		rows = append(rows, []string{star, e.Word.English, e.Word.Vietnamese, string(e.Word.Level), e.Word.Topic, acc})
	}
	title := fmt.Sprintf("Page %d/%d (%d words)", page.Page, page.TotalPages, page.Total)
	headers := []string{"", "English", "Vietnamese", "Level", "Topic", "Accuracy"}
	return stats.RenderTable(cmd.OutOrStdout(), title, headers, rows, map[int]bool{5: true})
}

func newStudyCmd() *cobra.Command {
	kinds := make([]string, len(vocab.StudyKinds))
	for i, k := range vocab.StudyKinds {
		kinds[i] = string(k)
	}
	cmd := &cobra.Command{
		Use:       "study <" + strings.Join(kinds, "|") + ">",
		Short:     "Study words with self-graded flashcards",
		Args:      cobra.ExactArgs(1),
		ValidArgs: kinds,
		RunE:      runStudyCmd,
	}
	cmd.Flags().StringVar(&studyLevel, "level", "", "level for 'study level'")
	cmd.Flags().StringVar(&studyTopic, "topic", "", "topic for 'study topic'")
	cmd.Flags().StringVar(&studyWord, "word", "", "English word for 'study word'")
	return cmd
}

func runStudyCmd(cmd *cobra.Command, args []string) error {
	kind := vocab.StudyKind(args[0])
	var arg string
	switch kind {
	case vocab.StudyLevel:
		arg = studyLevel
	case vocab.StudyTopic:
		arg = studyTopic
	case vocab.StudyWord:
		arg = studyWord
	}
	env, err := openEnv(true)
	if err != nil {
		return err
	}
	defer env.close()

	words, err := env.library.StudyWords(cmd.Context(), kind, arg)
	if err != nil {
		if errors.Is(err, vocab.ErrNoWordsToStudy) {
			logErrf("Nothing to study for %q yet.\n", kind)
		}
		return err
	}
	title := string(kind)
	if arg != "" {
		title += " · " + arg
	}
	ui := tui.NewStudyModel(vocab.NewStudyRun(env.library, words), title, env.logger)
	program := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run study TUI: %w", err)
	}
	return nil
}

func newFavoriteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorite",
		Short: "Manage favorite words",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add <english>",
		Short: "Mark a word as favorite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFavorite(cmd, args[0], true)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "remove <english>",
		Short: "Remove a word from favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFavorite(cmd, args[0], false)
		},
	})
	return cmd
}

func runFavorite(cmd *cobra.Command, english string, add bool) error {
	env, err := openEnv(false)
	if err != nil {
		return err
	}
	defer env.close()
	word, ok := env.library.Lookup(english)
	if !ok {
		return fmt.Errorf("%w: %q", vocab.ErrUnknownWord, english)
	}
	if add {
		if err := env.library.AddToFavorites(cmd.Context(), word.English); err != nil {
			return fmt.Errorf("failed to add favorite: %w", err)
		}
		logErrf("Added %s (%s) to favorites.\n", word.English, word.Vietnamese)
		return nil
	}
	if err := env.library.RemoveFromFavorites(cmd.Context(), word.English); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	logErrf("Removed %s from favorites.\n", word.English)
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
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
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

// env bundles the stores shared by the non-game commands.
type env struct {
	logger  *clog.Logger
	store   *store.Store
	stats   *stats.Store
	library *vocab.Library
	cleanup []func()
}

func openEnv(fullscreen bool) (*env, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger, closeLog, err := newLogger(fileCfg.Log, fullscreen)
	if err != nil {
		return nil, err
	}
	e := &env{logger: logger, cleanup: []func(){closeLog}}
	corpus := ""
	if fileCfg.Vocab.Corpus != nil {
		corpus = *fileCfg.Vocab.Corpus
	}
	words, err := loadCorpus(corpus)
	if err != nil {
		e.close()
		return nil, err
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		e.close()
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	e.cleanup = append(e.cleanup, func() { closeStore(st) })
	e.store = st
	e.stats = stats.NewStore(st, logger)
	e.library = vocab.NewLibrary(words, st, vocab.WithLogger(logger))
	return e, nil
}

func (e *env) close() {
	for i := len(e.cleanup) - 1; i >= 0; i-- {
		e.cleanup[i]()
	}
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func loadCorpus(path string) ([]model.WordRecord, error) {
	if path == "" {
		words, err := wordlist.DefaultWords()
		if err != nil {
			return nil, fmt.Errorf("failed to load built-in vocabulary: %w", err)
		}
		return words, nil
	}
	words, err := wordlist.LoadWords(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load vocabulary (check [vocab] corpus in %s): %w", config.DefaultConfigPath(), err)
	}
	return words, nil
}

// newLogger builds the application logger. Fullscreen commands log to a
// file so records do not draw over the alt screen.
func newLogger(cfg config.LogConfig, fullscreen bool) (*clog.Logger, func(), error) {
	level := clog.WarnLevel
	if cfg.Level != nil {
		parsed, err := clog.ParseLevel(*cfg.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid log level in config: %w", err)
		}
		level = parsed
	}
	if verbose {
		level = clog.DebugLevel
	}

	var out io.Writer = os.Stderr
	closeFn := func() {}
	path := ""
	if cfg.File != nil {
		path = *cfg.File
	} else if fullscreen {
		path = config.DefaultLogPath()
	}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		closeFn = func() {
			if cerr := f.Close(); cerr != nil {
				// Best-effort close of the log file.
				_ = cerr
			}
		}
	}
	logger := clog.NewWithOptions(out, clog.Options{
		Prefix:          "tuivocab",
		Level:           level,
		ReportTimestamp: path != "",
	})
	return logger, closeFn, nil
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

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
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

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tuivocab configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# level = %q        # beginner, intermediate or advanced
# player = "your name"     # Record scores on the leaderboard under this name
# focus-weak = false       # Draw weak words more often
# weak-top = %d             # Number of weak words to focus on
# weak-factor = %.1f        # Extra weight for weak words
# seed = 0                 # Random seed (0 picks one)

[vocab]
# corpus = "/path/to/words.yaml"   # Replace the built-in vocabulary

[log]
# level = "warn"           # debug, info, warn or error
# file = %q
`,
		defaultLevel,
		defaultWeakTop,
		defaultWeakFactor,
		config.DefaultLogPath(),
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
