package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/bridge-cli/internal/dataset"
)

type nearestResult struct {
	ID         int     `json:"id"`
	Nearest    int     `json:"nearest"`
	DistanceKM float64 `json:"distance_km"`
}

var nearestCmd = &cobra.Command{
	Use:   "nearest <id>",
	Short: "Find the bridge closest to another bridge",
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

		res := nearestResult{ID: id, Nearest: ds.NearestTo(id)}
		if res.Nearest != dataset.NotFound {
			a, _ := ds.Get(id)
			b, _ := ds.Get(res.Nearest)
			res.DistanceKM = ds.DistanceBetween(a, b)
		}
		return printJSON(cmd.OutOrStdout(), res)
	},
}

var (
	radiusLat    float64
	radiusLon    float64
	radiusKM     float64
	radiusMaxBCI float64
)

type idsResult struct {
	IDs []int `json:"ids"`
}

var radiusCmd = &cobra.Command{
	Use:   "radius",
	Short: "List bridges within a radius of a point",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ds, err := loadDataset(cmd)
		if err != nil {
			return err
		}

		ids := ds.IDsWithinRadius(radiusLat, radiusLon, radiusKM)
		if cmd.Flags().Changed("max-bci") {
			ids = ds.FilterByBCIAtMost(ids, radiusMaxBCI)
		}
		return printJSON(cmd.OutOrStdout(), idsResult{IDs: ids})
	},
}

type searchHit struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

var searchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "Find bridges whose name contains text, ignoring case",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(cmd)
		if err != nil {
			return err
		}

		hits := []searchHit{}
		for _, id := range ds.IDsContainingText(args[0]) {
			b, _ := ds.Get(id)
			hits = append(hits, searchHit{ID: id, Name: b.Name})
		}
		return printJSON(cmd.OutOrStdout(), hits)
	},
}

type highwayResult struct {
	Highway      string  `json:"highway"`
	TotalLengthM float64 `json:"total_length_m"`
}

var highwayCmd = &cobra.Command{
	Use:   "highway <designator>",
	Short: "Total bridge length on a highway",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(cmd)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), highwayResult{
			Highway:      args[0],
			TotalLengthM: ds.TotalLengthOnHighway(args[0]),
		})
	},
}

func init() {
	radiusCmd.Flags().Float64Var(&radiusLat, "lat", 0, "center latitude (required)")
	radiusCmd.Flags().Float64Var(&radiusLon, "lon", 0, "center longitude (required)")
	radiusCmd.Flags().Float64Var(&radiusKM, "km", 0, "radius in kilometers (required)")
	radiusCmd.Flags().Float64Var(&radiusMaxBCI, "max-bci", 100, "keep only bridges whose current BCI is at most this")
	_ = radiusCmd.MarkFlagRequired("lat")
	_ = radiusCmd.MarkFlagRequired("lon")
	_ = radiusCmd.MarkFlagRequired("km")

	rootCmd.AddCommand(nearestCmd)
	rootCmd.AddCommand(radiusCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(highwayCmd)
}
