package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Profile management commands",
	}

	cmd.AddCommand(newProfileCreateCmd())
	cmd.AddCommand(newProfileShowCmd())
	cmd.AddCommand(newProfileUpdateCmd())
	cmd.AddCommand(newProfileGameCmd())
	cmd.AddCommand(newProfileAvailabilityCmd())

	return cmd
}

func newProfileCreateCmd() *cobra.Command {
	var name, bio, region, style, discord, steam string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"display_name":        name,
				"bio":                 bio,
				"region":              region,
				"communication_style": style,
				"discord_tag":         discord,
				"steam_id":            steam,
			}
			var result Profile

			if err := client.Post("/api/v1/profile", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	cmd.Flags().StringVar(&region, "region", "", "Region (required)")
	cmd.Flags().StringVar(&bio, "bio", "", "Short bio")
	cmd.Flags().StringVar(&style, "style", "", "Communication style")
	cmd.Flags().StringVar(&discord, "discord", "", "Discord tag")
	cmd.Flags().StringVar(&steam, "steam", "", "Steam ID")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("region")

	return cmd
}

func newProfileShowCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a profile (yours by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/profile"
			if userID != "" {
				path = "/api/v1/profiles/" + userID
			}

			var result EnrichedProfile
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID (defaults to your own profile)")

	return cmd
}

func newProfileUpdateCmd() *cobra.Command {
	var name, bio, region, style, discord, steam string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Only send fields that were set
			req := map[string]string{}
			if cmd.Flags().Changed("name") {
				req["display_name"] = name
			}
			if cmd.Flags().Changed("bio") {
				req["bio"] = bio
			}
			if cmd.Flags().Changed("region") {
				req["region"] = region
			}
			if cmd.Flags().Changed("style") {
				req["communication_style"] = style
			}
			if cmd.Flags().Changed("discord") {
				req["discord_tag"] = discord
			}
			if cmd.Flags().Changed("steam") {
				req["steam_id"] = steam
			}

			var result Profile
			if err := client.Patch("/api/v1/profile", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&bio, "bio", "", "Short bio")
	cmd.Flags().StringVar(&region, "region", "", "Region")
	cmd.Flags().StringVar(&style, "style", "", "Communication style")
	cmd.Flags().StringVar(&discord, "discord", "", "Discord tag")
	cmd.Flags().StringVar(&steam, "steam", "", "Steam ID")

	return cmd
}

func newProfileGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Manage games on your profile",
	}

	cmd.AddCommand(newProfileGameAddCmd())
	cmd.AddCommand(newProfileGameRemoveCmd())

	return cmd
}

func newProfileGameAddCmd() *cobra.Command {
	var gameID, skill, role string
	var hours int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Link a game to your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"game_id":        gameID,
				"skill_level":    skill,
				"preferred_role": role,
			}
			if cmd.Flags().Changed("hours") {
				req["hours_played"] = hours
			}

			var result UserGame
			if err := client.Post("/api/v1/profile/games", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&gameID, "game", "", "Game ID (required)")
	cmd.Flags().StringVar(&skill, "skill", "", "Skill level")
	cmd.Flags().StringVar(&role, "role", "", "Preferred role")
	cmd.Flags().IntVar(&hours, "hours", 0, "Hours played")
	_ = cmd.MarkFlagRequired("game")

	return cmd
}

func newProfileGameRemoveCmd() *cobra.Command {
	var gameID string

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Unlink a game from your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/profile/games/" + gameID); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Game removed")
			return nil
		},
	}

	cmd.Flags().StringVar(&gameID, "game", "", "Game ID (required)")
	_ = cmd.MarkFlagRequired("game")

	return cmd
}

func newProfileAvailabilityCmd() *cobra.Command {
	var slots []string
	var timezone string

	cmd := &cobra.Command{
		Use:   "availability",
		Short: "Replace your weekly availability",
		Long: `Replace your weekly availability with the given slots.

Each --slot is DAY:START-END where DAY is 0 (Sunday) through 6 (Saturday),
e.g. --slot 5:19:00-23:00 --slot 6:14:00-23:00`,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed := make([]map[string]any, 0, len(slots))
			for _, s := range slots {
				slot, err := parseSlot(s, timezone)
				if err != nil {
					return err
				}
				parsed = append(parsed, slot)
			}

			req := map[string]any{"slots": parsed}
			if err := client.Put("/api/v1/profile/availability", req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Availability updated")
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&slots, "slot", nil, "Availability slot DAY:START-END (repeatable)")
	cmd.Flags().StringVar(&timezone, "tz", "UTC", "Timezone for all slots")

	return cmd
}

func parseSlot(s, timezone string) (map[string]any, error) {
	day, window, ok := strings.Cut(s, ":")
	if !ok {
		return nil, errInvalidSlot(s)
	}
	start, end, ok := strings.Cut(window, "-")
	if !ok {
		return nil, errInvalidSlot(s)
	}

	var dayOfWeek int
	switch day {
	case "0", "1", "2", "3", "4", "5", "6":
		dayOfWeek = int(day[0] - '0')
	default:
		return nil, errInvalidSlot(s)
	}

	return map[string]any{
		"day_of_week": dayOfWeek,
		"start_time":  start,
		"end_time":    end,
		"timezone":    timezone,
	}, nil
}

func errInvalidSlot(s string) error {
	return fmt.Errorf("invalid slot %q: expected DAY:START-END, e.g. 5:19:00-23:00", s)
}
