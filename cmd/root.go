package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Alturino/pharmacy/internal/constants"
	"github.com/Alturino/pharmacy/internal/log"
	notificationCmd "github.com/Alturino/pharmacy/notification/cmd"
	storefrontCmd "github.com/Alturino/pharmacy/storefront/cmd"
)

func Start() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().
		Timestamp().
		Str(log.KeyAppName, constants.AppPharmacy).
		Str(log.KeyTag, "main Start").
		Logger().
		Level(zerolog.WarnLevel)

	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	c = logger.WithContext(c)

	rootCmd := &cobra.Command{
		Use:   "pharmacy",
		Short: "Pharmacie Saidani storefront and backend",
	}
	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "api",
			Short: "Run the REST api serving products, orders and conversations",
			Run: func(cmd *cobra.Command, args []string) {
				runApiService(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "notification",
			Short: "Run the listener logging new orders and contact messages",
			Run: func(cmd *cobra.Command, args []string) {
				notificationCmd.RunNotificationService(cmd.Context())
			},
		},
		storefrontCmd.NewStorefrontCommand(),
	)
	if err := rootCmd.ExecuteContext(c); err != nil {
		logger.Fatal().Err(err).Msgf("error when executing command=%s", err.Error())
	}
}
