package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Apurer/petfriends-api-tests/internal/app/fake"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var port string
	cmd := &cobra.Command{
		Use:          "petfriends-fake",
		Short:        "Serve an in-process stand-in for the PetFriends API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := fake.LoadConfig()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			return fake.Run(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides PORT)")
	if err := cmd.ExecuteContext(ctx); err != nil {
		log.Fatalf("petfriends-fake: %v", err)
	}
}
