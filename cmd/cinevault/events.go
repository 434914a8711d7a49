package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show recent events",
	Long: `Show the audit log: job files, music jobs, playlist syncs and logins.

Examples:
  cinevault events             # Newest 20 events
  cinevault events --since 24h # Everything from the last day
  cinevault events --entity playlist/"Road Trip"`,
	RunE: runEventsCmd,
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	eventsCmd.Flags().String("since", "", "Only events newer than a duration (24h) or RFC 3339 time")
	eventsCmd.Flags().String("entity", "", "History of one entity, as type/id (e.g. music_job/<id>)")
}

// parseEntity splits "type/id". The id may itself contain slashes.
func parseEntity(s string) (string, string, error) {
	typ, id, ok := strings.Cut(s, "/")
	if !ok || typ == "" || id == "" {
		return "", "", fmt.Errorf("--entity %q: want type/id", s)
	}
	return typ, id, nil
}

func runEventsCmd(cmd *cobra.Command, args []string) error {
	q := EventQuery{}
	q.Limit, _ = cmd.Flags().GetInt("limit")
	q.Since, _ = cmd.Flags().GetString("since")
	if entity, _ := cmd.Flags().GetString("entity"); entity != "" {
		typ, id, err := parseEntity(entity)
		if err != nil {
			return err
		}
		q.EntityType, q.EntityID = typ, id
	}

	client, err := newAuthedClient()
	if err != nil {
		return err
	}
	evts, err := client.Events(q)
	if err != nil {
		return fmt.Errorf("failed to fetch events: %w", err)
	}

	if jsonOutput {
		printJSON(evts)
		return nil
	}
	printEvents(os.Stdout, evts)
	return nil
}
