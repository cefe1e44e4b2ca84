package core

import (
	"fmt"
	"io"

	"github.com/charliebarber/sat-routing-2d/model"
)

// WriteReport renders query results as plain text for the reporting
// boundary: one block per query with its classification, node sequence,
// and total weight. Failed queries are reported inline so a partial run
// still yields usable output.
func WriteReport(w io.Writer, results []model.QueryResult) error {
	for i, res := range results {
		tag := "Regular"
		if res.Kind == model.QueryZoneConstrained {
			tag = fmt.Sprintf("ZoneConstrained[%s]", res.Zone)
		}

		if res.Err != nil {
			if _, err := fmt.Fprintf(w, "%d. %s: FAILED: %v\n", i+1, tag, res.Err); err != nil {
				return err
			}
			continue
		}

		if _, err := fmt.Fprintf(w, "%d. %s: weight %.2f over %d hops\n   %s\n",
			i+1, tag, res.Path.Weight, res.Path.Hops(), res.Path); err != nil {
			return err
		}
	}
	return nil
}
