package main

import (
	"fmt"

	"github.com/spf13/cobra"

	dbpkg "github.com/BruksfildServices01/massage-scheduler/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Bring the database schema up to date",
	Long: `Applies pending schema migrations. A schema this build does not recognise
(newer version, or tables without a version row) is dropped and recreated.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}

		// Open migrates on its own
		gdb, err := e.openDB()
		if err != nil {
			return err
		}

		v, err := dbpkg.CurrentVersion(gdb)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", v)
		return nil
	},
}
