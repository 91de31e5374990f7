package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"callagent/internal/config"
	"callagent/internal/conversation"
	"callagent/internal/export"
	"callagent/internal/server"
)

// newExportCmd re-exports a stored conversation. Only the redis backend
// outlives the server process, so this is mostly useful with it.
func newExportCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "export <call_id>",
		Short: "Write the spreadsheet for a stored conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			store, err := server.NewStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			record, err := store.Get(cmd.Context(), args[0])
			if errors.Is(err, conversation.ErrNotFound) {
				return fmt.Errorf("conversation %s not found", args[0])
			}
			if err != nil {
				return err
			}

			filename, err := export.New(cfg.ExportDir).Write(record)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), filename)
			return nil
		},
	}
}
