package main

import (
	"fmt"

	"github.com/Veraticus/census-prep/internal/categories"
	"github.com/Veraticus/census-prep/internal/common"
	"github.com/spf13/cobra"
)

func mappingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mappings",
		Short: "Print the effective category mappings as YAML",
		Long: `Print the category mappings in use, with any --mappings overrides
applied. The output is a valid mappings file and can be edited and passed
back with --mappings.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			m, err := categories.LoadMappings(cfg.MappingsPath)
			if err != nil {
				return common.NewUserError("could not load category mappings", err)
			}
			data, err := categories.MarshalMappings(m)
			if err != nil {
				return fmt.Errorf("failed to render mappings: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
