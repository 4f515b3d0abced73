package main

import (
	"fmt"

	"github.com/Veraticus/census-prep/internal/census"
	"github.com/Veraticus/census-prep/internal/common"
	"github.com/Veraticus/census-prep/internal/model"
	"github.com/Veraticus/census-prep/internal/tui"
	"github.com/Veraticus/census-prep/internal/tui/themes"
	"github.com/spf13/cobra"
)

func exploreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Browse per-attribute census averages interactively",
		Long: `Aggregate a census table the way prep does and browse the mean
probabilities of each category, one attribute at a time.`,
		RunE: runExplore,
	}

	cmd.Flags().String("census", "", "census CSV file")
	cmd.Flags().String("theme", "", fmt.Sprintf("color theme %v", themes.Names()))

	return cmd
}

func runExplore(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	themeName, _ := cmd.Flags().GetString("theme")
	theme, err := themes.ByName(themeName)
	if err != nil {
		return common.NewUserError("invalid --theme", err)
	}

	censusPath, _ := cmd.Flags().GetString("census")
	censusTable, err := readTable("census", censusPath)
	if err != nil {
		return err
	}
	rows, err := model.CensusFromTable(censusTable)
	if err != nil {
		return err
	}

	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}
	aggregated, err := eng.PrepareCensus(ctx, rows, model.ModeScore)
	if err != nil {
		return err
	}

	return tui.Run(ctx, census.SummarizeAll(aggregated), tui.WithTheme(theme))
}
