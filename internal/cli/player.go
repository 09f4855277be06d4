package cli

import (
	"fmt"
	"net/http"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"roomhub/internal/api"
)

func newGuestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guest <display-name>",
		Short: "Create a guest identity and store its session token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp api.AuthResponse
			err := client().doJSON(http.MethodPost, "/players/guest", api.GuestRequest{DisplayName: args[0]}, &resp)
			if err != nil {
				return err
			}
			if err := SaveToken(resp.Token); err != nil {
				return fmt.Errorf("saving token: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), resp.Player)
		},
	}
}

func newRegisterCmd() *cobra.Command {
	var displayName string
	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Register an account and store its session token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := promptPassword(cmd)
			if err != nil {
				return err
			}
			var resp api.AuthResponse
			err = client().doJSON(http.MethodPost, "/players/register", api.RegisterRequest{
				Username:    args[0],
				Password:    password,
				DisplayName: displayName,
			}, &resp)
			if err != nil {
				return err
			}
			if err := SaveToken(resp.Token); err != nil {
				return fmt.Errorf("saving token: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), resp.Player)
		},
	}
	cmd.Flags().StringVar(&displayName, "display-name", "", "display name (defaults to the username)")
	return cmd
}

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <username>",
		Short: "Log in and store the session token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := promptPassword(cmd)
			if err != nil {
				return err
			}
			var resp api.AuthResponse
			err = client().doJSON(http.MethodPost, "/players/login", api.LoginRequest{
				Username: args[0],
				Password: password,
			}, &resp)
			if err != nil {
				return err
			}
			if err := SaveToken(resp.Token); err != nil {
				return fmt.Errorf("saving token: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), resp.Player)
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the player behind the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var resp api.PlayerResponse
			if err := client().doJSON(http.MethodGet, "/players/me", nil, &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Invalidate the current session and forget the token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := client().doJSON(http.MethodPost, "/players/logout", nil, nil); err != nil {
				return err
			}
			return ClearToken()
		},
	}
}

func promptPassword(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(password), nil
}
