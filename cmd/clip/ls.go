package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List clipboards on the server",
	Args:  cobra.NoArgs,
	RunE:  runLs,
}

func init() {
	rootCmd.AddCommand(lsCmd)
}

func runLs(cmd *cobra.Command, args []string) error {
	summaries, err := newClient().List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list clipboards: %w", err)
	}

	if len(summaries) == 0 {
		fmt.Println("No clipboards.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSIZE\tUPDATED")
	for _, sum := range summaries {
		fmt.Fprintf(w, "%s\t%d\t%s\n",
			sum.ID, sum.Size, sum.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}
