package dataset

import (
	"errors"

	"chat-insights-go/internal/types"
)

var (
	// ErrLoad wraps every failure to read or parse a dataset source.
	ErrLoad = errors.New("dataset load failed")
	// ErrPersist wraps every failure to write a dataset back.
	ErrPersist = errors.New("dataset persist failed")
)

// Dataset is an ordered table of chat records. Header order and row order are
// preserved from the source; unknown columns are carried verbatim.
type Dataset struct {
	header []string
	rows   [][]string
	index  map[string]int
}

// New builds a dataset from a header and rows. Rows shorter than the header are
// padded with empty cells.
func New(header []string, rows [][]string) (*Dataset, error) {
	d := &Dataset{
		header: append([]string(nil), header...),
		index:  make(map[string]int, len(header)),
	}
	for i, h := range d.header {
		if _, dup := d.index[h]; dup {
			return nil, errors.New("duplicate column " + h)
		}
		d.index[h] = i
	}
	d.rows = make([][]string, len(rows))
	for i, r := range rows {
		row := make([]string, len(d.header))
		copy(row, r)
		d.rows[i] = row
	}
	return d, nil
}

func (d *Dataset) Header() []string { return append([]string(nil), d.header...) }

func (d *Dataset) Len() int { return len(d.rows) }

func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.index[name]
	return ok
}

// EnsureColumn appends an empty column if name is absent.
func (d *Dataset) EnsureColumn(name string) {
	if d.HasColumn(name) {
		return
	}
	d.index[name] = len(d.header)
	d.header = append(d.header, name)
	for i := range d.rows {
		d.rows[i] = append(d.rows[i], "")
	}
}

// Value returns the cell at row i of column name; absent columns read as "".
func (d *Dataset) Value(i int, name string) string {
	col, ok := d.index[name]
	if !ok {
		return ""
	}
	return d.rows[i][col]
}

// Missing reports whether row i has no value in column name.
func (d *Dataset) Missing(i int, name string) bool {
	return d.Value(i, name) == ""
}

// Set stores v at row i of column name, creating the column if needed.
func (d *Dataset) Set(i int, name, v string) {
	d.EnsureColumn(name)
	d.rows[i][d.index[name]] = v
}

// Row returns a copy of row i in header order.
func (d *Dataset) Row(i int) []string {
	return append([]string(nil), d.rows[i]...)
}

// Record returns a typed view of row i.
func (d *Dataset) Record(i int) types.ChatRecord {
	return types.ChatRecord{
		ChatMessages:           d.Value(i, types.ColChatMessages),
		ChatCapturedDate:       d.Value(i, types.ColChatCapturedDate),
		CustomerSentiment:      d.Value(i, types.ColCustomerSentiment),
		QueryClassification:    d.Value(i, types.ColQueryClassification),
		CustomerClassification: d.Value(i, types.ColCustomerClassification),
	}
}

// Tail returns typed views of the last n rows in dataset order.
func (d *Dataset) Tail(n int) []types.ChatRecord {
	start := len(d.rows) - n
	if start < 0 {
		start = 0
	}
	out := make([]types.ChatRecord, 0, len(d.rows)-start)
	for i := start; i < len(d.rows); i++ {
		out = append(out, d.Record(i))
	}
	return out
}
