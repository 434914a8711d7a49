package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var musicCmd = &cobra.Command{
	Use:   "music",
	Short: "Music download commands",
}

var musicGetCmd = &cobra.Command{
	Use:   "get <url>",
	Short: "Download a Spotify or YouTube URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runMusicGetCmd,
}

var musicStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show music download progress",
	RunE:  runMusicStatusCmd,
}

func init() {
	rootCmd.AddCommand(musicCmd)
	musicCmd.AddCommand(musicGetCmd)
	musicCmd.AddCommand(musicStatusCmd)
	musicGetCmd.Flags().BoolP("watch", "w", false, "Follow progress until the download ends")
	musicStatusCmd.Flags().BoolP("watch", "w", false, "Follow progress until the download ends")
	musicStatusCmd.Flags().Duration("interval", 2*time.Second, "Polling interval for --watch")
}

func runMusicGetCmd(cmd *cobra.Command, args []string) error {
	watch, _ := cmd.Flags().GetBool("watch")

	client, err := newAuthedClient()
	if err != nil {
		return err
	}
	resp, err := client.StartMusic(args[0])
	if err != nil {
		return fmt.Errorf("music download failed: %w", err)
	}

	if jsonOutput && !watch {
		printJSON(resp)
		return nil
	}
	fmt.Println(resp.Message)
	if watch {
		return watchMusic(client, 2*time.Second)
	}
	return nil
}

func runMusicStatusCmd(cmd *cobra.Command, args []string) error {
	watch, _ := cmd.Flags().GetBool("watch")
	interval, _ := cmd.Flags().GetDuration("interval")

	client, err := newAuthedClient()
	if err != nil {
		return err
	}
	if watch {
		return watchMusic(client, interval)
	}

	status, err := client.MusicStatus()
	if err != nil {
		return fmt.Errorf("failed to fetch music status: %w", err)
	}
	if jsonOutput {
		printJSON(status)
		return nil
	}
	printMusicStatus(os.Stdout, status)
	return nil
}

// watchMusic polls until the record reports the download is no longer running.
func watchMusic(client *Client, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		status, err := client.MusicStatus()
		if err != nil {
			return fmt.Errorf("failed to fetch music status: %w", err)
		}
		if jsonOutput {
			printJSON(status)
		} else {
			printMusicStatus(os.Stdout, status)
			fmt.Println()
		}
		if !status.IsDownloading {
			return nil
		}
		<-ticker.C
	}
}
