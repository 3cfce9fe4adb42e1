package server

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sipi-it/slms/internal/agent"
	config "github.com/sipi-it/slms/internal/config/server"
)

func NewReconcilerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconciler",
		Short: "Start the SLMS storage reconciler",
		Long:  `Start the long-running reconciler agent that periodically sweeps document records against the structured and legacy stores, reporting orphans.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadServerConfig()
			if err != nil {
				return fmt.Errorf("failed to load server configuration: %w", err)
			}

			agent := agent.NewAgent(cfg)
			if err := agent.Serve(context.Background()); err != nil {
				return err
			}

			return nil
		},
	}

	return cmd
}
