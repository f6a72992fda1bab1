package dataset

import (
	"fmt"
	"io"
	"sort"

	"chat-insights-go/internal/types"
)

// EmptyLabel is the key under which missing values are counted.
const EmptyLabel = "(empty)"

// Frequency is one label and the number of rows carrying it.
type Frequency struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ColumnSummary is the frequency table of one column, sorted by descending
// count and then by label.
type ColumnSummary struct {
	Column string      `json:"column"`
	Counts []Frequency `json:"counts"`
}

type DatasetSummary struct {
	TotalConversations int             `json:"total_conversations"`
	Columns            []ColumnSummary `json:"columns"`
}

// Summarize counts rows per distinct value of every derived column.
func Summarize(ds *Dataset) DatasetSummary {
	out := DatasetSummary{TotalConversations: ds.Len()}
	for _, col := range types.DerivedColumns {
		out.Columns = append(out.Columns, summarizeColumn(ds, col))
	}
	return out
}

func summarizeColumn(ds *Dataset, col string) ColumnSummary {
	counts := map[string]int{}
	for i := 0; i < ds.Len(); i++ {
		v := ds.Value(i, col)
		if v == "" {
			v = EmptyLabel
		}
		counts[v]++
	}
	freqs := make([]Frequency, 0, len(counts))
	for k, v := range counts {
		freqs = append(freqs, Frequency{Label: k, Count: v})
	}
	sort.Slice(freqs, func(i, j int) bool {
		if freqs[i].Count != freqs[j].Count {
			return freqs[i].Count > freqs[j].Count
		}
		return freqs[i].Label < freqs[j].Label
	})
	return ColumnSummary{Column: col, Counts: freqs}
}

// Column returns the summary for col, if present.
func (s DatasetSummary) Column(col string) (ColumnSummary, bool) {
	for _, c := range s.Columns {
		if c.Column == col {
			return c, true
		}
	}
	return ColumnSummary{}, false
}

// Count returns how many rows carry label in this column.
func (c ColumnSummary) Count(label string) int {
	for _, f := range c.Counts {
		if f.Label == label {
			return f.Count
		}
	}
	return 0
}

// Print writes the human-readable distribution tables.
func (s DatasetSummary) Print(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "\nTotal conversations: %d\n", s.TotalConversations); err != nil {
		return err
	}
	for _, c := range s.Columns {
		if _, err := fmt.Fprintf(w, "\n%s distribution:\n", c.Column); err != nil {
			return err
		}
		for _, f := range c.Counts {
			if _, err := fmt.Fprintf(w, "  %-20s %d\n", f.Label, f.Count); err != nil {
				return err
			}
		}
	}
	return nil
}
