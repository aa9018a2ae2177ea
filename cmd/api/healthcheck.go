package main

import (
	"fmt"
	"strings"
	"time"

	"pet-adoption/internal/platform/httpclient"

	"github.com/spf13/cobra"
)

var flagHealthURL string

var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check that a running server answers /health",
	RunE: func(cmd *cobra.Command, args []string) error {
		base := flagHealthURL
		if base == "" {
			cfg, _, err := loadRuntime()
			if err != nil {
				return err
			}
			base = localURL(cfg.Server.Addr)
		}

		c, err := httpclient.NewWithBaseURL(base, 3*time.Second)
		if err != nil {
			return err
		}

		var out struct {
			Status string `json:"status"`
		}
		if err := c.GetJSON(cmd.Context(), "/health", &out); err != nil {
			return fmt.Errorf("healthcheck: %w", err)
		}
		if out.Status != "ok" {
			return fmt.Errorf("healthcheck: unexpected status %q", out.Status)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "ok")
		return nil
	},
}

func init() {
	healthcheckCmd.Flags().StringVar(&flagHealthURL, "url", "", "server base url (default: derived from server.addr)")
}

// localURL convierte ":8080" / "0.0.0.0:8080" en http://127.0.0.1:8080.
func localURL(addr string) string {
	host, port, ok := strings.Cut(addr, ":")
	if !ok {
		return "http://" + addr
	}
	if host == "" || host == "0.0.0.0" {
		host = "127.0.0.1"
	}
	return "http://" + host + ":" + port
}
