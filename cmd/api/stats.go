package main

import (
	"github.com/spf13/cobra"

	infraRepo "github.com/BruksfildServices01/massage-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/massage-scheduler/internal/timezone"
	"github.com/BruksfildServices01/massage-scheduler/internal/tui"
	ucStats "github.com/BruksfildServices01/massage-scheduler/internal/usecase/stats"
)

var statsFrom, statsTo string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print completed sessions and revenue",
	Long: `Prints totals for completed appointments between --from and --to
(YYYY-MM-DD, inclusive). Defaults to the last 30 days.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}

		gdb, err := e.openDB()
		if err != nil {
			return err
		}

		summary := ucStats.NewSummary(infraRepo.NewAppointmentGormRepository(gdb), e.loc)
		from, to := summary.DefaultRange()
		if statsFrom != "" {
			if from, err = timezone.ParseDate(statsFrom, e.loc); err != nil {
				return err
			}
		}
		if statsTo != "" {
			if to, err = timezone.ParseDate(statsTo, e.loc); err != nil {
				return err
			}
		}

		s, err := summary.Execute(cmd.Context(), from, to)
		if err != nil {
			return err
		}
		return tui.RenderStats(cmd.OutOrStdout(), s)
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsFrom, "from", "", "First day (YYYY-MM-DD)")
	statsCmd.Flags().StringVar(&statsTo, "to", "", "Last day (YYYY-MM-DD)")
}
