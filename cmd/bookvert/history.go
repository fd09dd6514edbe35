package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"bookvert/internal/journal"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show past conversion runs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(cfg.Paths.JournalDB) == "" {
				return fmt.Errorf("paths.journal_db is not configured")
			}
			store, err := journal.Open(cfg.Paths.JournalDB)
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("run-id must be an integer: %w", err)
				}
				records, err := store.RunRecords(cmd.Context(), id)
				if err != nil {
					return err
				}
				if len(records) == 0 {
					fmt.Fprintf(out, "No records for run %d\n", id)
					return nil
				}
				rows := make([][]string, 0, len(records))
				for _, rec := range records {
					detail := rec.Detail
					rows = append(rows, []string{
						rec.Book,
						rec.Archive,
						strconv.Itoa(rec.Pages),
						rec.Status,
						detail,
					})
				}
				renderTable(out, []string{"Book", "Archive", "Pages", "Status", "Detail"}, rows, 3)
				return nil
			}

			runs, err := store.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					strconv.FormatInt(run.ID, 10),
					run.StartedAt.Local().Format(time.DateTime),
					run.Title,
					run.Status,
					fmt.Sprintf("%d/%d", run.Converted, run.Total),
					run.Source,
				})
			}
			renderTable(out, []string{"ID", "Started", "Title", "Status", "Converted", "Source"}, rows, 1, 5)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Number of runs to show")
	return cmd
}
