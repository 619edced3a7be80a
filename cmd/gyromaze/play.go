package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/TheAppMakerPro/gyro-maze/internal/config"
	"github.com/TheAppMakerPro/gyro-maze/internal/game"
	"github.com/TheAppMakerPro/gyro-maze/internal/levels"
	"github.com/TheAppMakerPro/gyro-maze/internal/platform/tui"
	"github.com/TheAppMakerPro/gyro-maze/internal/storage"
)

var (
	flagConfig string
	flagAssist string
	flagTheme  string
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play the maze",
	Long: `Start playing. Without an argument the level picker opens; with a
level number the game jumps straight into that level.

Controls:
  Arrows/WASD - Tilt the board
  P           - Pause
  T           - Fire the time warp (when owned)
  R           - Restart the level
  N           - Next level (after a win)
  Esc         - Pause, then back to the picker
  Q/Ctrl+C    - Quit

Assist presets:
  casual  - Gentler physics, longer powerups
  classic - The stock tuning
  expert  - Fast ball, short powerups

Examples:
  gyromaze play
  gyromaze play 12
  gyromaze play --assist casual
  gyromaze play --theme mono
  gyromaze play --config ./my-tuning.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	playCmd.Flags().StringVar(&flagAssist, "assist", "", "Assist preset: casual, classic, expert")
	playCmd.Flags().StringVar(&flagTheme, "theme", "", "Color theme: default, mono")
}

func runPlay(cmd *cobra.Command, args []string) {
	// Load tuning and apply the assist preset
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagAssist != "" {
		if !config.KnownPreset(flagAssist) {
			fmt.Fprintf(os.Stderr, "Error: unknown assist preset %q (casual, classic, expert)\n", flagAssist)
			os.Exit(1)
		}
		config.ApplyPreset(&cfg, config.AssistPreset(flagAssist))
	}

	switch flagTheme {
	case "", "default":
	case "mono":
		tui.SetTheme(tui.MonochromeTheme())
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown theme %q (default, mono)\n", flagTheme)
		os.Exit(1)
	}

	st := tui.SettingsFromConfig(&cfg)
	if cmd.Flags().Changed("fps") {
		st.FPS = flagFPS
	}
	st.Seed = flagSeed

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open progress storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open progress database: %v\n", err)
		// Continue without storage - the game still works
		store = nil
	}

	var collab *storage.Collaborator
	if store != nil {
		c, collabErr := storage.NewCollaborator(store, st.StartingLives, nil)
		if collabErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not load player state: %v\n", collabErr)
		} else {
			collab = c
		}
	}

	// Optional explicit level argument
	level := 0
	if len(args) == 1 {
		n, convErr := strconv.Atoi(args[0])
		if convErr != nil || n < 1 || n > st.MaxLevel {
			fmt.Fprintf(os.Stderr, "Error: level must be a number between 1 and %d\n", st.MaxLevel)
			os.Exit(1)
		}
		if collab != nil && n > collab.MaxUnlocked() {
			fmt.Fprintf(os.Stderr, "Error: level %d is locked; the highest unlocked level is %d\n",
				n, collab.MaxUnlocked())
			os.Exit(1)
		}
		level = n
	}

	runErr := playLoop(levels.NewCatalog(), store, collab, st, level, width, height)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}

// playLoop cycles picker and levels until the player quits. A level of
// zero opens the picker first.
func playLoop(catalog *levels.Catalog, store *storage.Store, collab *storage.Collaborator,
	st tui.Settings, level, width, height int) error {
	for {
		if level == 0 {
			sel, err := tui.RunLevelSelect(progressionOf(collab), st.MaxLevel, width, height)
			if err != nil {
				return err
			}
			if sel.Quit {
				return nil
			}
			if sel.ShowProgress {
				goBack, progErr := tui.RunProgress(store, width, height)
				if progErr != nil {
					return progErr
				}
				if !goBack {
					return nil
				}
				continue // Back to the picker
			}
			level = sel.Level
		}

		var rec tui.AttemptRecorder
		var gc game.Collaborator
		if collab != nil {
			rec = collab
			gc = collab
		}

		session, err := tui.NewLevelSession(catalog, level, st, gc)
		if err != nil {
			return err
		}

		result, err := tui.RunPlay(session, rec, st, width, height)
		if err != nil {
			return err
		}

		switch {
		case result.Quit:
			return nil

		case result.Restart:
			// A game over spent the bank; reload so the wallet's life
			// top-up applies before the retry. Same level again.
			if store != nil {
				if c, reloadErr := storage.NewCollaborator(store, st.StartingLives, nil); reloadErr == nil {
					collab = c
				}
			}

		case result.NextLevel > 0:
			level = result.NextLevel

		default:
			level = 0 // Back to the picker
		}
	}
}

// progressionOf converts the typed collaborator pointer into the picker
// interface, keeping a nil pointer from turning into a non-nil interface.
func progressionOf(c *storage.Collaborator) tui.Progression {
	if c == nil {
		return nil
	}
	return c
}
