package cli

import (
	"net/url"

	"github.com/spf13/cobra"
)

func newGamesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "games",
		Short: "Game catalog commands",
	}

	cmd.AddCommand(newGamesListCmd())
	cmd.AddCommand(newGamesCategoriesCmd())
	cmd.AddCommand(newGamesCreateCmd())
	cmd.AddCommand(newGamesSeedCmd())

	return cmd
}

func newGamesListCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List games in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/games"
			if category != "" {
				path += "?category=" + url.QueryEscape(category)
			}

			var result []Game
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Filter by category")

	return cmd
}

func newGamesCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List distinct game categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []string
			if err := client.Get("/api/v1/games/categories", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if cfg.Output == "json" {
				out.Print(result)
				return nil
			}
			for _, c := range result {
				out.PrintMessage(c)
			}
			return nil
		},
	}
}

func newGamesCreateCmd() *cobra.Command {
	var name, category, icon string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a game to the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"name":     name,
				"category": category,
				"icon":     icon,
			}

			var result Game
			if err := client.Post("/api/v1/games", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Game name (required)")
	cmd.Flags().StringVar(&category, "category", "", "Category")
	cmd.Flags().StringVar(&icon, "icon", "", "Icon")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newGamesSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the catalog with a default set of games",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Game
			if err := client.Post("/api/v1/games/seed", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
