package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/massage-scheduler/internal/events"
	infraRepo "github.com/BruksfildServices01/massage-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/massage-scheduler/internal/seed"
	ucCatalog "github.com/BruksfildServices01/massage-scheduler/internal/usecase/catalog"
	ucClient "github.com/BruksfildServices01/massage-scheduler/internal/usecase/client"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import services and clients from a YAML file",
	Long: `Imports a starting catalog. Entries that already exist by name are skipped.

Example file:
  services:
    - name: Relaxing massage
      duration_min: 60
      price: "45.00"
  clients:
    - name: Ana
      phone: "+54 11 5555 0000"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}

		f, err := os.Open(seedFile)
		if err != nil {
			return err
		}
		defer f.Close()

		parsed, err := seed.Parse(f)
		if err != nil {
			return err
		}

		gdb, err := e.openDB()
		if err != nil {
			return err
		}

		im := seed.NewImporter(
			ucCatalog.New(infraRepo.NewServiceGormRepository(gdb), events.Nop{}),
			ucClient.New(infraRepo.NewClientGormRepository(gdb), events.Nop{}),
		)

		res, err := im.Import(cmd.Context(), parsed)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(),
			"services: %d created, %d skipped\nclients: %d created, %d skipped\n",
			res.ServicesCreated, res.ServicesSkipped, res.ClientsCreated, res.ClientsSkipped)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "catalog.yaml", "YAML file to import")
}
