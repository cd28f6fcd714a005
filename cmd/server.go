/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cuentas/apiserver/config"
	"github.com/cuentas/apiserver/internal/logger"
	"github.com/cuentas/apiserver/internal/server"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Starts the API server",
	Long: `Starts the API server. Usage:

	apiserver server
`,
	Run: func(cmd *cobra.Command, args []string) {
		logger.Init()

		cfg, err := config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Error al iniciar el servidor")
		}

		srv, err := server.New(cmd.Context(), cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Error al iniciar el servidor")
		}
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
