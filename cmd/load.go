package main

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/bridge-cli/internal/dataset"
	"github.com/sells-group/bridge-cli/internal/fetcher"
)

// loadDataset reads the table named by --data, falling back to data.path.
func loadDataset(cmd *cobra.Command) (*dataset.Dataset, error) {
	path := dataPath
	if path == "" {
		path = cfg.Data.Path
	}

	ds, err := dataset.Load(cmd.Context(), path, fetcher.Options{
		SkipRows:   cfg.Data.HeaderRows,
		SheetIndex: cfg.Data.SheetIndex,
		TrimSpace:  cfg.Data.TrimSpace,
	})
	if err != nil {
		return nil, eris.Wrapf(err, "load dataset %s", path)
	}

	zap.L().Info("dataset loaded",
		zap.String("path", path),
		zap.Int("bridges", ds.Len()),
	)
	return ds, nil
}

// parseID parses a positional bridge id argument.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, eris.Wrapf(err, "invalid bridge id %q", arg)
	}
	return id, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
