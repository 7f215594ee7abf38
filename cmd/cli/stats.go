package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dashboard statistics for the logged-in user",
	Run: func(cmd *cobra.Command, args []string) {
		token := viper.GetString("token")
		if token == "" {
			fmt.Println("Not logged in. Run 'contractplus login' first.")
			return
		}

		req, _ := http.NewRequest("GET", serverURL()+"/api/dashboard/stats", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			fmt.Printf("Error connecting to server: %v\n", err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusUnauthorized {
			fmt.Println("Session expired. Run 'contractplus login' again.")
			return
		}
		if resp.StatusCode != http.StatusOK {
			fmt.Println("Failed to load stats. Status:", resp.Status)
			return
		}

		var stats struct {
			Total    int `json:"total_contracts"`
			Active   int `json:"active_contracts"`
			Expiring int `json:"expiring_7_days"`
			Overdue  int `json:"overdue_contracts"`
			Recent   []struct {
				Name          string `json:"name"`
				EndDate       string `json:"end_date"`
				DaysRemaining *int   `json:"days_remaining"`
			} `json:"recent_contracts"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
			fmt.Printf("Error decoding response: %v\n", err)
			return
		}

		fmt.Printf("Total contracts:    %d\n", stats.Total)
		fmt.Printf("Active contracts:   %d\n", stats.Active)
		fmt.Printf("Expiring in 7 days: %d\n", stats.Expiring)
		fmt.Printf("Overdue contracts:  %d\n", stats.Overdue)
		if len(stats.Recent) > 0 {
			fmt.Println("\nRecent contracts:")
			for _, c := range stats.Recent {
				days := "?"
				if c.DaysRemaining != nil {
					days = fmt.Sprintf("%d days left", *c.DaysRemaining)
				}
				fmt.Printf("  %-30s %s (%s)\n", c.Name, c.EndDate, days)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
