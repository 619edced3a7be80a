// gyromaze is a tilt-controlled maze game for the terminal.
//
// Usage:
//
//	gyromaze play [level]    - Play, via the picker or a specific level
//	gyromaze levels [level]  - List the catalog, or inspect one level
//	gyromaze progress        - Show level results and the wallet
//	gyromaze generate <n>    - Dump a generated level definition
//	gyromaze serve           - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Override the bounce seed (0 = per-level default)
//	--db <path>     - Set database path (default: ~/.gyromaze/progress.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gyromaze",
	Short: "Gyro Maze - Tilt a ball through terminal mazes",
	Long: `Gyro Maze is a terminal game: tilt the board with the arrow keys and
roll the ball to the goal, past holes, moving walls and bounce pads.

Available commands:
  play     - Play, via the level picker or straight into a level
  levels   - Show the level catalog
  progress - View your results, wallet and upgrades
  generate - Dump a level definition for inspection
  serve    - Start SSH server for remote play

Examples:
  gyromaze play
  gyromaze play 12
  gyromaze play --assist casual
  gyromaze levels --to 30
  gyromaze serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Bounce seed override (0 = per-level default)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.gyromaze/progress.db", "Path to progress database")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(serveCmd)
}
