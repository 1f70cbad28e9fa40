package fetcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Format identifies a supported table file type.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatZIP  Format = "zip"
)

// Options configures ReadRows for every supported format.
type Options struct {
	SkipRows   int // header lines discarded before the first data row
	SheetIndex int // XLSX only
	TrimSpace  bool
}

// formatOf maps a file extension to a Format.
func formatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, true
	case ".xlsx":
		return FormatXLSX, true
	case ".zip":
		return FormatZIP, true
	default:
		return "", false
	}
}

// ReadRows reads the data rows of the table at path, choosing a parser by
// file extension. ZIP archives are unpacked to a temporary directory that is
// removed before returning.
func ReadRows(ctx context.Context, path string, opts Options) ([][]string, error) {
	kind, ok := formatOf(path)
	if !ok {
		return nil, eris.Errorf("fetcher: unsupported file type %q", filepath.Ext(path))
	}

	log := zap.L().With(zap.String("path", path), zap.String("format", string(kind)))

	switch kind {
	case FormatXLSX:
		rows, err := ReadXLSX(path, XLSXOptions{
			SheetIndex: opts.SheetIndex,
			SkipRows:   opts.SkipRows,
			TrimSpace:  opts.TrimSpace,
		})
		if err != nil {
			return nil, err
		}
		log.Debug("fetcher: read xlsx", zap.Int("rows", len(rows)))
		return rows, nil

	case FormatZIP:
		tmp, err := os.MkdirTemp("", "bridge-table-*")
		if err != nil {
			return nil, eris.Wrap(err, "fetcher: create temp dir")
		}
		defer os.RemoveAll(tmp) //nolint:errcheck

		inner, err := ExtractTable(path, tmp)
		if err != nil {
			return nil, err
		}
		log.Debug("fetcher: extracted table", zap.String("table", filepath.Base(inner)))
		return ReadRows(ctx, inner, opts)

	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrap(err, "fetcher: open csv")
		}
		defer f.Close() //nolint:errcheck

		rows, err := ReadCSV(ctx, f, CSVOptions{
			SkipRows:   opts.SkipRows,
			LazyQuotes: true,
			TrimSpace:  opts.TrimSpace,
		})
		if err != nil {
			return nil, err
		}
		log.Debug("fetcher: read csv", zap.Int("rows", len(rows)))
		return rows, nil
	}
}
