package cli

import (
	"github.com/spf13/cobra"
)

var (
	flagServer string
	flagToken  string
)

// NewRootCmd builds the roomctl command tree
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "roomctl",
		Short:         "Command-line client for a roomhub server",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&flagServer, "server", "", "server base URL (default http://localhost:8080, env ROOMHUB_SERVER)")
	root.PersistentFlags().StringVar(&flagToken, "token", "", "session token (default from ~/.roomhub/token, env ROOMHUB_TOKEN)")

	root.AddCommand(
		newHealthCmd(),
		newGuestCmd(),
		newRegisterCmd(),
		newLoginCmd(),
		newWhoamiCmd(),
		newLogoutCmd(),
		newRoomCmd(),
		newSaveCmd(),
		newWatchCmd(),
	)
	return root
}

// client builds an API client from the current flags and environment
func client() *Client {
	return NewClient(LoadConfig(flagServer, flagToken))
}
