package main

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/bridge-cli/internal/assign"
)

var (
	assignPlanPath   string
	assignInspectors []string
	assignMax        int
)

type inspectorAssignment struct {
	Inspector assign.Location `json:"inspector"`
	BridgeIDs []int           `json:"bridge_ids"`
}

type assignOutput struct {
	PlanID          string                `json:"plan_id"`
	MaxPerInspector int                   `json:"max_per_inspector"`
	Tiers           []assign.Tier         `json:"tiers"`
	Assignments     []inspectorAssignment `json:"assignments"`
}

var assignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Assign inspectors to bridges by priority tier",
	Long:  "Assigns each inspector, in order, up to --max bridges. Tiers are evaluated high to low; a bridge goes to the first inspector that reaches it.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		plan, err := buildPlan(cmd)
		if err != nil {
			return err
		}

		ds, err := loadDataset(cmd)
		if err != nil {
			return err
		}

		a := assign.New(ds, assign.WithTiers(plan.Tiers))
		result := a.Assign(plan.Inspectors, plan.MaxPerInspector)

		out := assignOutput{
			PlanID:          uuid.New().String(),
			MaxPerInspector: plan.MaxPerInspector,
			Tiers:           a.Tiers(),
			Assignments:     make([]inspectorAssignment, len(result)),
		}
		for i, ids := range result {
			out.Assignments[i] = inspectorAssignment{Inspector: plan.Inspectors[i], BridgeIDs: ids}
		}

		zap.L().Info("assignment complete",
			zap.String("plan_id", out.PlanID),
			zap.Int("inspectors", len(result)),
			zap.Int("assigned", result.Total()),
		)
		return printJSON(cmd.OutOrStdout(), out)
	},
}

// buildPlan merges --plan, --inspector and --max over the configured defaults.
func buildPlan(cmd *cobra.Command) (*assign.Plan, error) {
	plan := &assign.Plan{MaxPerInspector: cfg.Assign.MaxPerInspector}
	if assignPlanPath != "" {
		p, err := assign.LoadPlan(assignPlanPath)
		if err != nil {
			return nil, err
		}
		plan = p
	}

	for _, raw := range assignInspectors {
		loc, err := parseLocation(raw)
		if err != nil {
			return nil, err
		}
		plan.Inspectors = append(plan.Inspectors, loc)
	}
	if cmd.Flags().Changed("max") {
		plan.MaxPerInspector = assignMax
	}
	if len(plan.Tiers) == 0 {
		plan.Tiers = cfg.Assign.Tiers
	}

	if len(plan.Inspectors) == 0 {
		return nil, eris.New("at least one inspector is required (--plan or --inspector)")
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return plan, nil
}

// parseLocation parses "lat,lon".
func parseLocation(raw string) (assign.Location, error) {
	latStr, lonStr, ok := strings.Cut(raw, ",")
	if !ok {
		return assign.Location{}, eris.Errorf("invalid inspector %q: want lat,lon", raw)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return assign.Location{}, eris.Wrapf(err, "invalid inspector latitude %q", latStr)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return assign.Location{}, eris.Wrapf(err, "invalid inspector longitude %q", lonStr)
	}
	return assign.Location{Latitude: lat, Longitude: lon}, nil
}

func init() {
	assignCmd.Flags().StringVar(&assignPlanPath, "plan", "", "YAML plan with inspectors, max_per_inspector and optional tiers")
	assignCmd.Flags().StringArrayVar(&assignInspectors, "inspector", nil, "inspector location as lat,lon (repeatable)")
	assignCmd.Flags().IntVar(&assignMax, "max", 0, "bridges per inspector (default assign.max_per_inspector from config)")
	rootCmd.AddCommand(assignCmd)
}
