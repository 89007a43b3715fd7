package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sebostien/any-ls/requests"
)

func createVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the server version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("any-ls %s\n", requests.Version)
		},
	}

	return cmd
}
