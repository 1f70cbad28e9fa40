package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/bridge-cli/internal/inspection"
	"github.com/sells-group/bridge-cli/internal/model"
)

var (
	inspectIDs  []int
	inspectDate string
	inspectBCI  float64

	rehabDate  string
	rehabMajor bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Record an inspection and print the updated bridges",
	Long:  "Applies a new inspection to the loaded dataset and prints the affected bridges. The source file is not modified.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ds, err := loadDataset(cmd)
		if err != nil {
			return err
		}

		n := inspection.RecordInspection(ds, inspectIDs, inspectDate, inspectBCI)
		zap.L().Info("inspection recorded",
			zap.Int("requested", len(inspectIDs)),
			zap.Int("updated", n),
		)

		updated := []model.Bridge{}
		for _, id := range inspectIDs {
			if b, ok := ds.Get(id); ok {
				updated = append(updated, b)
			}
		}
		return printJSON(cmd.OutOrStdout(), updated)
	},
}

var rehabCmd = &cobra.Command{
	Use:   "rehab <id>",
	Short: "Record a rehabilitation and print the updated bridge",
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

		if !inspection.RecordRehab(ds, id, rehabDate, rehabMajor) {
			return eris.Errorf("bridge %d not found", id)
		}
		b, _ := ds.Get(id)
		return printJSON(cmd.OutOrStdout(), b)
	},
}

func init() {
	inspectCmd.Flags().IntSliceVar(&inspectIDs, "ids", nil, "bridge ids inspected (required)")
	inspectCmd.Flags().StringVar(&inspectDate, "date", "", "inspection date MM/DD/YYYY (required)")
	inspectCmd.Flags().Float64Var(&inspectBCI, "bci", 0, "new BCI reading (required)")
	_ = inspectCmd.MarkFlagRequired("ids")
	_ = inspectCmd.MarkFlagRequired("date")
	_ = inspectCmd.MarkFlagRequired("bci")

	rehabCmd.Flags().StringVar(&rehabDate, "date", "", "rehabilitation date MM/DD/YYYY (required)")
	rehabCmd.Flags().BoolVar(&rehabMajor, "major", false, "record as a major rehabilitation (default minor)")
	_ = rehabCmd.MarkFlagRequired("date")

	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(rehabCmd)
}
