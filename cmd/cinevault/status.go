package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the server and, with a password, the session",
	RunE:  runStatusCmd,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatusCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	status, err := client.Status()
	if err != nil {
		return fmt.Errorf("status check failed: %w", err)
	}

	loggedIn := false
	if password != "" {
		if err := client.Login(password); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		sess, err := client.CheckSession()
		if err != nil {
			return fmt.Errorf("session check failed: %w", err)
		}
		loggedIn = sess.IsLoggedIn
	}

	if jsonOutput {
		printJSON(map[string]any{
			"server":     serverURL,
			"isOffline":  status.IsOffline,
			"message":    status.Message,
			"isLoggedIn": loggedIn,
		})
		return nil
	}

	state := "online"
	if status.IsOffline {
		state = "offline"
	}
	fmt.Printf("Server:  %s (%s)\n", serverURL, state)
	fmt.Printf("Message: %s\n", status.Message)
	if password != "" {
		fmt.Printf("Session: %t\n", loggedIn)
	}
	return nil
}
