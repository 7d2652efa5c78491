package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var (
	userID  string
	track   string
	dryRun  bool
	amount  int64
	tierNum int
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(joinCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(rolloverCmd)
	rootCmd.AddCommand(xpCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(claimCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(clearCmd)

	joinCmd.Flags().StringVar(&userID, "user", "", "The user ID to join with")
	joinCmd.MarkFlagRequired("user")

	scoreCmd.Flags().StringVar(&userID, "user", "", "The user ID to credit")
	scoreCmd.Flags().Int64Var(&amount, "amount", 0, "The score amount to add")
	scoreCmd.MarkFlagRequired("user")

	statusCmd.Flags().StringVar(&userID, "user", "", "The user ID to look up")
	statusCmd.MarkFlagRequired("user")

	rolloverCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be closed without writing")

	xpCmd.Flags().StringVar(&userID, "user", "", "The user ID to credit")
	xpCmd.Flags().Int64Var(&amount, "amount", 0, "The XP amount to add")
	xpCmd.MarkFlagRequired("user")

	progressCmd.Flags().StringVar(&userID, "user", "", "The user ID to look up")
	progressCmd.MarkFlagRequired("user")

	claimCmd.Flags().StringVar(&userID, "user", "", "The user ID claiming")
	claimCmd.Flags().IntVar(&tierNum, "tier", 0, "The tier number to claim")
	claimCmd.Flags().StringVar(&track, "track", "free", "The claim track: free or premium")
	claimCmd.MarkFlagRequired("user")
	claimCmd.MarkFlagRequired("tier")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var joinCmd = &cobra.Command{
	Use:   "join",
	Short: "Join this week's league for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/league/join", map[string]any{"user_id": userID})
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Add weekly score for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/league/score", map[string]any{"user_id": userID, "amount": amount})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show a user's league status for this week",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/league/status?user_id=" + url.QueryEscape(userID))
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings [league-id]",
	Short: "Show the ranked standings of a league",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/league/standings?league_id=" + url.QueryEscape(args[0]))
	},
}

var rolloverCmd = &cobra.Command{
	Use:   "rollover",
	Short: "Trigger the weekly league rollover",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/rollover"
		if dryRun {
			endpoint += "?dry_run=true"
		}
		return performPostRequest(endpoint, nil)
	},
}

var xpCmd = &cobra.Command{
	Use:   "xp",
	Short: "Add season XP for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/season/xp", map[string]any{"user_id": userID, "amount": amount})
	},
}

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show a user's season progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/season/progress?user_id=" + url.QueryEscape(userID))
	},
}

var claimCmd = &cobra.Command{
	Use:   "claim",
	Short: "Claim a season tier reward",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/season/claim", map[string]any{"user_id": userID, "tier": tierNum, "track": track})
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Get durable application counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/stats")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the league store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/clear")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint string, payload map[string]any) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
