package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [room-id]",
		Short: "Stream events, optionally subscribing to one room",
		Long: "Connects to the server's event stream and prints every event as a JSON\n" +
			"line. Global events always arrive; pass a room id to also receive that\n" +
			"room's events.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := LoadConfig(flagServer, flagToken)
			if cfg.Token == "" {
				return fmt.Errorf("no session token; run guest, register, or login first")
			}

			wsURL := strings.Replace(cfg.ServerURL, "http", "ws", 1) + "/api/v1/ws"
			header := http.Header{"Authorization": {"Bearer " + cfg.Token}}
			conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
			if err != nil {
				return fmt.Errorf("connecting to %s: %w", wsURL, err)
			}
			defer conn.Close()

			if len(args) == 1 {
				sub := map[string]string{"action": "subscribe", "roomId": args[0]}
				if err := conn.WriteJSON(sub); err != nil {
					return err
				}
			}

			interrupt := make(chan os.Signal, 1)
			signal.Notify(interrupt, os.Interrupt)
			go func() {
				<-interrupt
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				conn.Close()
			}()

			out := json.NewEncoder(cmd.OutOrStdout())
			for {
				var event map[string]any
				if err := conn.ReadJSON(&event); err != nil {
					if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
						return nil
					}
					return err
				}
				if err := out.Encode(event); err != nil {
					return err
				}
			}
		},
	}
}
