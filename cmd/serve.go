package cmd

import (
	"github.com/emrgen/bookpost/internal/config"
	"github.com/emrgen/bookpost/internal/server"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var port string

	command := &cobra.Command{
		Use:   "serve",
		Short: "Start the bookpost http server",
		Run: func(cmd *cobra.Command, args []string) {
			if port == "" {
				port = config.LoadConfig().HTTPPort
			}

			server.NewServer(port).Start()
		},
	}

	command.Flags().StringVarP(&port, "port", "p", "", "http port")

	return command
}
