package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <link>",
	Short: "Send a link to JDownloader",
	Long: `Write a crawljob for the link into JDownloader's watch folder.

Examples:
  cinevault add https://host/file.mkv --title "The Matrix"
  cinevault add https://host/s01.zip --title "Show S01" --series`,
	Args: cobra.ExactArgs(1),
	RunE: runAddCmd,
}

var downloadsCmd = &cobra.Command{
	Use:   "downloads",
	Short: "Show JDownloader's download list",
	RunE:  runDownloadsCmd,
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(downloadsCmd)
	addCmd.Flags().StringP("title", "t", "", "Package name (sanitized by the server)")
	addCmd.Flags().Bool("series", false, "File under the series folder")
}

func runAddCmd(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	series, _ := cmd.Flags().GetBool("series")
	kind := "movie"
	if series {
		kind = "serie"
	}

	client, err := newAuthedClient()
	if err != nil {
		return err
	}
	resp, err := client.AddLink(args[0], title, kind)
	if err != nil {
		return fmt.Errorf("add failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}
	fmt.Println(resp.Message)
	return nil
}

func runDownloadsCmd(cmd *cobra.Command, args []string) error {
	client, err := newAuthedClient()
	if err != nil {
		return err
	}
	items, err := client.Downloads()
	if err != nil {
		return fmt.Errorf("failed to fetch downloads: %w", err)
	}

	if jsonOutput {
		printJSON(items)
		return nil
	}
	printDownloads(os.Stdout, items)
	return nil
}
