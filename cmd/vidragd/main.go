package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tmls-media/vidrag/internal/cli"
	"github.com/tmls-media/vidrag/internal/cli/admin"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vidragd",
		Short: "Vidrag daemon",
		Long:  "Vidrag daemon for running the video retrieval API server",
	}

	cli.AddHelpJSONFlag(rootCmd)
	rootCmd.AddCommand(admin.ServeCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
