package cmd

import (
	"strconv"
	"time"

	"github.com/doughepi/grain/feature/history"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var historyLimit int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent sync passes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := setup(true)
		if err != nil {
			return err
		}
		defer logg.Sync()

		repo := openHistory(cmd.Context(), cfg, logg)
		if repo == nil {
			return errors.WithHint(errors.New("pass history is not available"),
				"check the database section of the configuration")
		}
		records, err := repo.List(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			pterm.Info.Println("No passes recorded yet")
			return nil
		}
		return pterm.DefaultTable.WithHasHeader().WithData(historyTable(records)).Render()
	},
}

func historyTable(records []history.PassRecord) pterm.TableData {
	data := pterm.TableData{{"Started", "Source", "Staged", "Created", "Updated", "Waited", "Failed", "Took", "Pass"}}
	for _, r := range records {
		failed := strconv.Itoa(r.Failed)
		if r.Failed > 0 {
			failed = pterm.Red(failed)
		}
		data = append(data, []string{
			r.StartedAt.Local().Format(time.DateTime),
			r.Source,
			strconv.Itoa(r.Staged),
			strconv.Itoa(r.Created),
			strconv.Itoa(r.Updated),
			strconv.Itoa(r.Waited),
			failed,
			r.Duration().Round(time.Millisecond).String(),
			r.PassID,
		})
	}
	return data
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", history.DefaultLimit, "number of passes to show")
	RootCmd.AddCommand(historyCmd)
}
