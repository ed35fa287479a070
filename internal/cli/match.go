package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Matchmaking and match commands",
	}

	cmd.AddCommand(newMatchSuggestCmd())
	cmd.AddCommand(newMatchCreateCmd())
	cmd.AddCommand(newMatchRespondCmd())
	cmd.AddCommand(newMatchListCmd())
	cmd.AddCommand(newMatchMessagesCmd())
	cmd.AddCommand(newMatchSendCmd())

	return cmd
}

func newMatchSuggestCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Find compatible players",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/matchmaking/suggestions"
			if cmd.Flags().Changed("limit") {
				path += "?limit=" + strconv.Itoa(limit)
			}

			var result []Suggestion
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum suggestions to return")

	return cmd
}

func newMatchCreateCmd() *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Request a match with another user",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"target_user_id": target}

			var result Match
			if err := client.Post("/api/v1/matches", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "user", "", "Target user ID (required)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func newMatchRespondCmd() *cobra.Command {
	var matchID, decision string

	cmd := &cobra.Command{
		Use:   "respond",
		Short: "Accept or decline a match request",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"decision": decision}

			var result Match
			if err := client.Post("/api/v1/matches/"+matchID+"/respond", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&matchID, "match", "", "Match ID (required)")
	cmd.Flags().StringVar(&decision, "decision", "", "accepted or declined (required)")
	_ = cmd.MarkFlagRequired("match")
	_ = cmd.MarkFlagRequired("decision")

	return cmd
}

func newMatchListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your matches",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []EnrichedMatch
			if err := client.Get("/api/v1/matches", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchMessagesCmd() *cobra.Command {
	var matchID string

	cmd := &cobra.Command{
		Use:   "messages",
		Short: "Read the conversation for a match",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Message
			if err := client.Get("/api/v1/matches/"+matchID+"/messages", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&matchID, "match", "", "Match ID (required)")
	_ = cmd.MarkFlagRequired("match")

	return cmd
}

func newMatchSendCmd() *cobra.Command {
	var matchID, content string

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a message in a match",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"content": content}

			var result Message
			if err := client.Post("/api/v1/matches/"+matchID+"/messages", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&matchID, "match", "", "Match ID (required)")
	cmd.Flags().StringVar(&content, "content", "", "Message content (required)")
	_ = cmd.MarkFlagRequired("match")
	_ = cmd.MarkFlagRequired("content")

	return cmd
}
