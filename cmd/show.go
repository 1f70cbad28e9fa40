package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/bridge-cli/internal/model"
)

type bridgeView struct {
	model.Bridge
	AverageBCI float64 `json:"average_bci"`
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one bridge with its average BCI",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		ds, err := loadDataset(cmd)
		if err != nil {
			return err
		}

		b, ok := ds.Get(id)
		if !ok {
			return eris.Errorf("bridge %d not found", id)
		}
		return printJSON(cmd.OutOrStdout(), bridgeView{Bridge: b, AverageBCI: ds.AverageBCI(id)})
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the dataset",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ds, err := loadDataset(cmd)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), ds.Stats())
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(statsCmd)
}
