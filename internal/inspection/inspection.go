// Package inspection records inspection and rehabilitation events against a dataset.
package inspection

import (
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/bridge-cli/internal/dataset"
	"github.com/sells-group/bridge-cli/internal/model"
)

// RecordInspection stores a new inspection (date and BCI reading) on every
// bridge in ids. Unknown ids are skipped. Returns the number of bridges updated.
func RecordInspection(ds *dataset.Dataset, ids []int, date string, bci float64) int {
	updated := 0
	for _, id := range ids {
		ok := ds.Update(id, func(b *model.Bridge) {
			b.AddInspection(date, bci)
		})
		if !ok {
			zap.L().Debug("inspection: unknown bridge skipped", zap.Int("bridge_id", id))
			continue
		}
		updated++
	}
	return updated
}

// RecordRehab stores the year of date (the text after its final "/") as the
// bridge's last major or minor rehabilitation. Reports whether the bridge exists.
func RecordRehab(ds *dataset.Dataset, id int, date string, major bool) bool {
	year := RehabYear(date)
	ok := ds.Update(id, func(b *model.Bridge) {
		b.SetRehab(year, major)
	})
	if !ok {
		zap.L().Debug("inspection: unknown bridge skipped", zap.Int("bridge_id", id))
	}
	return ok
}

// RehabYear extracts the year from an MM/DD/YYYY date. A date without a
// separator is returned whole.
func RehabYear(date string) string {
	return date[strings.LastIndex(date, "/")+1:]
}
