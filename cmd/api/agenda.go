package main

import (
	"github.com/spf13/cobra"

	infraRepo "github.com/BruksfildServices01/massage-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/massage-scheduler/internal/tui"
	ucAppointment "github.com/BruksfildServices01/massage-scheduler/internal/usecase/appointment"
)

var agendaCmd = &cobra.Command{
	Use:   "agenda",
	Short: "Browse the agenda in the terminal",
	Long: `Opens a month view with the number of appointments per day and the
selected day's list. Navigate with the arrow keys, [ and ] change month.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}

		gdb, err := e.openDB()
		if err != nil {
			return err
		}

		repo := infraRepo.NewAppointmentGormRepository(gdb)
		return tui.RunAgenda(
			ucAppointment.NewDayCounts(repo, e.loc),
			ucAppointment.NewListAppointmentsByDate(repo, e.loc),
			e.loc,
		)
	},
}
