package cli

import (
	"bytes"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"roomhub/internal/api"
)

func newSaveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Upload, download, and manage save games",
	}
	cmd.AddCommand(
		newSaveUploadCmd(),
		newSaveDownloadCmd(),
		newSaveListCmd(),
		newSaveDeleteCmd(),
	)
	return cmd
}

func newSaveUploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <slot> <file>",
		Short: "Upload a file into a save slot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[1], err)
			}
			body, err := client().doRaw(http.MethodPut, "/saves/"+args[0], "application/octet-stream", bytes.NewReader(data))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(body, '\n'))
			return err
		},
	}
}

func newSaveDownloadCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "download <slot>",
		Short: "Download a save slot's blob",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := client().doRaw(http.MethodGet, "/saves/"+args[0], "", nil)
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return os.WriteFile(output, data, 0o644)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func newSaveListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List save slots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var resp api.SaveListResponse
			if err := client().doJSON(http.MethodGet, "/saves", nil, &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp.Saves)
		},
	}
}

func newSaveDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <slot>",
		Short: "Delete a save slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return client().doJSON(http.MethodDelete, "/saves/"+args[0], nil, nil)
		},
	}
}
