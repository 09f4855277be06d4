package cli

import (
	"net/http"

	"github.com/spf13/cobra"

	"roomhub/internal/api"
	"roomhub/internal/model"
)

func newRoomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Create, inspect, and manage rooms",
	}
	cmd.AddCommand(
		newRoomCreateCmd(),
		newRoomListCmd(),
		newRoomGetCmd(),
		newRoomJoinCmd(),
		newRoomLeaveCmd(),
		newRoomStartCmd(),
		newRoomEndCmd(),
	)
	return cmd
}

func newRoomCreateCmd() *cobra.Command {
	var (
		maxPlayers int
		private    bool
		password   string
		class      string
		level      int
	)
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a room and join it as host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp model.RoomSnapshot
			err := client().doJSON(http.MethodPost, "/rooms", api.CreateRoomRequest{
				Name:       args[0],
				MaxPlayers: maxPlayers,
				IsPublic:   !private,
				Password:   password,
				Profile:    model.MemberProfile{CharacterClass: class, Level: level},
			}, &resp)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().IntVar(&maxPlayers, "max-players", 4, "maximum number of players")
	cmd.Flags().BoolVar(&private, "private", false, "hide the room from the public listing")
	cmd.Flags().StringVar(&password, "password", "", "room password")
	cmd.Flags().StringVar(&class, "class", "", "character class to show in the room")
	cmd.Flags().IntVar(&level, "level", 0, "character level to show in the room")
	return cmd
}

func newRoomListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List public rooms that are accepting players",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var resp api.RoomListResponse
			if err := client().doJSON(http.MethodGet, "/rooms", nil, &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp.Rooms)
		},
	}
}

func newRoomGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <room-id>",
		Short: "Show a room's current state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp model.RoomSnapshot
			if err := client().doJSON(http.MethodGet, "/rooms/"+args[0], nil, &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
}

func newRoomJoinCmd() *cobra.Command {
	var (
		password string
		class    string
		level    int
	)
	cmd := &cobra.Command{
		Use:   "join <room-id>",
		Short: "Join a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp model.RoomSnapshot
			err := client().doJSON(http.MethodPost, "/rooms/"+args[0]+"/join", api.JoinRoomRequest{
				Password: password,
				Profile:  model.MemberProfile{CharacterClass: class, Level: level},
			}, &resp)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "room password")
	cmd.Flags().StringVar(&class, "class", "", "character class to show in the room")
	cmd.Flags().IntVar(&level, "level", 0, "character level to show in the room")
	return cmd
}

func newRoomLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave <room-id>",
		Short: "Leave a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return client().doJSON(http.MethodPost, "/rooms/"+args[0]+"/leave", nil, nil)
		},
	}
}

func newRoomStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <room-id>",
		Short: "Start the game (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp model.RoomSnapshot
			if err := client().doJSON(http.MethodPost, "/rooms/"+args[0]+"/start", nil, &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
}

func newRoomEndCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end <room-id>",
		Short: "End the game and return the room to waiting (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp model.RoomSnapshot
			if err := client().doJSON(http.MethodPost, "/rooms/"+args[0]+"/end", nil, &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
}
