package cli

import (
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

func newLFGCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lfg",
		Short: "Looking-for-group board commands",
	}

	cmd.AddCommand(newLFGListCmd())
	cmd.AddCommand(newLFGCreateCmd())
	cmd.AddCommand(newLFGMineCmd())
	cmd.AddCommand(newLFGUpdateCmd())
	cmd.AddCommand(newLFGDeleteCmd())

	return cmd
}

func newLFGListCmd() *cobra.Command {
	var gameID, region string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Browse the LFG board",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			if gameID != "" {
				query.Set("game_id", gameID)
			}
			if region != "" {
				query.Set("region", region)
			}
			if cmd.Flags().Changed("limit") {
				query.Set("limit", strconv.Itoa(limit))
			}

			path := "/api/v1/lfg"
			if len(query) > 0 {
				path += "?" + query.Encode()
			}

			var result []EnrichedLFGPost
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&gameID, "game", "", "Filter by game ID")
	cmd.Flags().StringVar(&region, "region", "", "Filter by region")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum posts to return")

	return cmd
}

func newLFGCreateCmd() *cobra.Command {
	var gameID, title, description, skill string
	var players int
	var tags []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Post to the LFG board",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"game_id":        gameID,
				"title":          title,
				"description":    description,
				"skill_level":    skill,
				"players_needed": players,
				"tags":           tags,
			}

			var result LFGPost
			if err := client.Post("/api/v1/lfg", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&gameID, "game", "", "Game ID (required)")
	cmd.Flags().StringVar(&title, "title", "", "Post title (required)")
	cmd.Flags().StringVar(&description, "description", "", "Post description")
	cmd.Flags().StringVar(&skill, "skill", "", "Desired skill level")
	cmd.Flags().IntVar(&players, "players", 1, "Players needed")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tags (repeatable)")
	_ = cmd.MarkFlagRequired("game")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("skill")

	return cmd
}

func newLFGMineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List your own posts, active or not",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []EnrichedLFGPost
			if err := client.Get("/api/v1/lfg/mine", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newLFGUpdateCmd() *cobra.Command {
	var postID, title, description, skill string
	var players int
	var active bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update one of your posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Only send fields that were set
			req := map[string]any{}
			if cmd.Flags().Changed("title") {
				req["title"] = title
			}
			if cmd.Flags().Changed("description") {
				req["description"] = description
			}
			if cmd.Flags().Changed("skill") {
				req["skill_level"] = skill
			}
			if cmd.Flags().Changed("players") {
				req["players_needed"] = players
			}
			if cmd.Flags().Changed("active") {
				req["is_active"] = active
			}

			var result LFGPost
			if err := client.Patch("/api/v1/lfg/"+postID, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&postID, "post", "", "Post ID (required)")
	cmd.Flags().StringVar(&title, "title", "", "Post title")
	cmd.Flags().StringVar(&description, "description", "", "Post description")
	cmd.Flags().StringVar(&skill, "skill", "", "Desired skill level")
	cmd.Flags().IntVar(&players, "players", 1, "Players needed")
	cmd.Flags().BoolVar(&active, "active", true, "Whether the post is active")
	_ = cmd.MarkFlagRequired("post")

	return cmd
}

func newLFGDeleteCmd() *cobra.Command {
	var postID string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete one of your posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/lfg/" + postID); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Post deleted")
			return nil
		},
	}

	cmd.Flags().StringVar(&postID, "post", "", "Post ID (required)")
	_ = cmd.MarkFlagRequired("post")

	return cmd
}
