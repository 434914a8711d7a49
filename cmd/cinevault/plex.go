package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var plexCmd = &cobra.Command{
	Use:   "plex",
	Short: "Plex media server commands",
}

var plexInventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "List the movie library",
	Long: `List the Plex movie section.

With -q, titles are matched fuzzily and accents are ignored:
  cinevault plex inventory -q amelie`,
	RunE: runPlexInventoryCmd,
}

var plexRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Ask Plex to rescan every library",
	RunE:  runPlexRefreshCmd,
}

var plexUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List Plex users available for playlist sync",
	RunE:  runPlexUsersCmd,
}

var plexSyncCmd = &cobra.Command{
	Use:   "sync <playlist-url>",
	Short: "Mirror a Spotify playlist into Plex",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlexSyncCmd,
}

func init() {
	rootCmd.AddCommand(plexCmd)
	plexCmd.AddCommand(plexInventoryCmd)
	plexCmd.AddCommand(plexRefreshCmd)
	plexCmd.AddCommand(plexUsersCmd)
	plexCmd.AddCommand(plexSyncCmd)

	plexInventoryCmd.Flags().StringP("query", "q", "", "Fuzzy title search")
	plexInventoryCmd.Flags().IntP("limit", "n", 0, "Maximum results for --query")
	plexSyncCmd.Flags().String("name", "", "Playlist name in Plex (required)")
	plexSyncCmd.Flags().String("user", "", "Plex user id (default: server owner)")
	_ = plexSyncCmd.MarkFlagRequired("name")
}

func runPlexInventoryCmd(cmd *cobra.Command, args []string) error {
	query, _ := cmd.Flags().GetString("query")
	limit, _ := cmd.Flags().GetInt("limit")

	client, err := newAuthedClient()
	if err != nil {
		return err
	}
	items, err := client.Inventory(query, limit)
	if err != nil {
		return fmt.Errorf("inventory failed: %w", err)
	}

	if jsonOutput {
		printJSON(items)
		return nil
	}
	printInventory(os.Stdout, items)
	return nil
}

func runPlexRefreshCmd(cmd *cobra.Command, args []string) error {
	client, err := newAuthedClient()
	if err != nil {
		return err
	}
	resp, err := client.RefreshPlex()
	if err != nil {
		return fmt.Errorf("plex refresh failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}
	fmt.Println(resp.Message)
	return nil
}

type plexUser struct {
	ID    any    `json:"id"`
	Title string `json:"title"`
}

func runPlexUsersCmd(cmd *cobra.Command, args []string) error {
	client, err := newAuthedClient()
	if err != nil {
		return err
	}
	raw, err := client.PlexUsers()
	if err != nil {
		return fmt.Errorf("listing users failed: %w", err)
	}

	var users []plexUser
	if jsonOutput || json.Unmarshal(raw, &users) != nil {
		// Unknown shape: show what the script returned.
		printJSON(raw)
		return nil
	}

	if len(users) == 0 {
		fmt.Println("No users")
		return nil
	}
	for _, u := range users {
		fmt.Printf("  %-12v %s\n", u.ID, u.Title)
	}
	return nil
}

func runPlexSyncCmd(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	user, _ := cmd.Flags().GetString("user")

	client, err := newAuthedClient()
	if err != nil {
		return err
	}
	resp, err := client.SyncPlaylist(args[0], name, user)
	if err != nil {
		return fmt.Errorf("playlist sync failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}
	fmt.Println(resp.Message)
	return nil
}
