package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sebostien/any-ls/server"
)

func createServeCommand() *cobra.Command {
	opts := server.Options{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the language protocol over stdio or a TCP socket",
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.InitializeService(opts)
		},
	}

	cmd.Flags().StringVar(&opts.Listen, "listen", "", "TCP address to listen on; serves over stdio when empty")
	cmd.Flags().StringVar(&opts.LogFile, "log-file", "", "file to append logs to; stderr when empty")
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "increase logging verbosity; repeatable")

	return cmd
}
