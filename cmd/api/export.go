package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/massage-scheduler/internal/backup"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a JSON snapshot of the agenda",
	Long: `Writes clients, services and appointments as one JSON document. The
snapshot goes to the configured S3 bucket, or to a local folder otherwise.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		if exportDir != "" {
			e.cfg.Backup.Dir = exportDir
			e.cfg.Backup.Bucket = ""
		}

		gdb, err := e.openDB()
		if err != nil {
			return err
		}

		location, err := backup.NewService(gdb, backup.NewStore(e.cfg.Backup)).Run(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), location)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "Write to this folder instead of the configured store")
}
