package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"
)

var announce bool

func init() {
	pairingsCmd.Flags().BoolVar(&announce, "announce", false, "Also announce the pairings in Slack")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(byeCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(pairingsCmd)
	rootCmd.AddCommand(announceStandingsCmd)
	rootCmd.AddCommand(deleteMatchesCmd)
	rootCmd.AddCommand(deletePlayersCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd, http.MethodGet, "/health", nil)
	},
}

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Show how many players are registered",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd, http.MethodGet, "/players/count", nil)
	},
}

var registerCmd = &cobra.Command{
	Use:   "register NAME",
	Short: "Register a player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd, http.MethodPost, "/players", map[string]string{"name": args[0]})
	},
}

var reportCmd = &cobra.Command{
	Use:   "report WINNER LOSER",
	Short: "Report the result of a match by player id",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		return performRequest(cmd, http.MethodPost, "/matches", map[string]int64{"winner": ids[0], "loser": ids[1]})
	},
}

var byeCmd = &cobra.Command{
	Use:   "bye PLAYER",
	Short: "Record a bye for a player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		return performRequest(cmd, http.MethodPost, "/byes", map[string]int64{"player_id": ids[0]})
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "List players ordered by wins",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd, http.MethodGet, "/standings", nil)
	},
}

var pairingsCmd = &cobra.Command{
	Use:   "pairings",
	Short: "Get the pairings for the next round",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/pairings"
		if announce {
			endpoint += "?announce=true"
		}
		return performRequest(cmd, http.MethodGet, endpoint, nil)
	},
}

var announceStandingsCmd = &cobra.Command{
	Use:   "announce-standings",
	Short: "Announce the current standings in Slack",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd, http.MethodPost, "/announce/standings", nil)
	},
}

var deleteMatchesCmd = &cobra.Command{
	Use:   "delete-matches",
	Short: "Remove all match and bye records",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd, http.MethodDelete, "/matches", nil)
	},
}

var deletePlayersCmd = &cobra.Command{
	Use:   "delete-players",
	Short: "Remove all players",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd, http.MethodDelete, "/players", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd, http.MethodGet, "/metrics", nil)
	},
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, len(args))
	for i, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid player id %q", arg)
		}
		ids[i] = id
	}
	return ids, nil
}

func performRequest(cmd *cobra.Command, method, endpoint string, payload any) error {
	url := host + endpoint
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Making %s request to %s\n", method, url)

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(cmd.Context(), method, url, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Fprintf(out, "Status Code: %d\n", resp.StatusCode)
	fmt.Fprintln(out, "Response Body:")
	fmt.Fprintln(out, string(respBody))

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("server returned %s", resp.Status)
	}
	return nil
}
