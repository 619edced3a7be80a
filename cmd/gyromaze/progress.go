package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TheAppMakerPro/gyro-maze/internal/maze"
	"github.com/TheAppMakerPro/gyro-maze/internal/storage"
)

var flagReset bool

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show level results, wallet and upgrades",
	Long: `Display every recorded level attempt along with the coin bank, the
spare lives and the owned upgrades.

Examples:
  gyromaze progress
  gyromaze progress --reset`,
	Run: runProgress,
}

func init() {
	progressCmd.Flags().BoolVar(&flagReset, "reset", false, "Wipe all progress, the wallet and the upgrades")
}

func runProgress(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening progress database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagReset {
		if resetErr := store.Reset(); resetErr != nil {
			fmt.Fprintf(os.Stderr, "Error resetting progress: %v\n", resetErr)
			os.Exit(1)
		}
		fmt.Println("Progress, wallet and upgrades cleared.")
		return
	}

	rows, err := store.AllProgress()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving progress: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Level Progress")
	fmt.Println()

	if len(rows) == 0 {
		fmt.Println("No attempts recorded yet.")
		fmt.Println()
		fmt.Println("Run 'gyromaze play' to start your record!")
	} else {
		// Print header
		fmt.Printf("  %-5s  %-9s  %-8s  %-5s  %-5s  %s\n", "Level", "Tier", "Best", "Stars", "Tries", "Completed")
		fmt.Printf("  %-5s  %-9s  %-8s  %-5s  %-5s  %s\n", "-----", "----", "----", "-----", "-----", "---------")

		for _, p := range rows {
			best, stars, completed := "-", "-", "-"
			if p.Completed {
				best = fmt.Sprintf("%.2fs", float64(p.BestTimeMs)/1000)
				stars = strings.Repeat("*", p.Stars)
				completed = p.CompletedAt.Format("2006-01-02 15:04")
			}
			fmt.Printf("  %-5d  %-9s  %-8s  %-5s  %-5d  %s\n",
				p.Level, maze.TierFor(p.Level).Name, best, stars, p.Attempts, completed)
		}
	}

	// Summary
	if stats, statsErr := store.GetStats(); statsErr == nil && stats != nil {
		fmt.Println()
		fmt.Printf("Completed: %d   Stars: %d   Attempts: %d   Highest level: %d\n",
			stats.LevelsCompleted, stats.TotalStars, stats.TotalAttempts, stats.HighestLevel)
	}

	// Wallet
	if coins, lives, walletErr := store.Wallet(); walletErr == nil {
		fmt.Printf("Bank: %d coins   Spare lives: %d\n", coins, lives)
	}

	// Upgrades
	if upgrades, upErr := store.Upgrades(); upErr == nil && len(upgrades) > 0 {
		names := make([]string, 0, len(upgrades))
		for name := range upgrades {
			names = append(names, name)
		}
		sort.Strings(names)

		parts := make([]string, 0, len(names))
		for _, name := range names {
			parts = append(parts, fmt.Sprintf("%s x%d", name, upgrades[name]))
		}
		fmt.Printf("Upgrades: %s\n", strings.Join(parts, ", "))
	}
}
