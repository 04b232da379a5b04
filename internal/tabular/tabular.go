package tabular

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrArity is returned when a row's width differs from the header's.
var ErrArity = errors.New("row arity does not match header")

// Date is a calendar date without a time of day, as read from a DATE
// column. It renders as YYYY-MM-DD.
type Date time.Time

func (d Date) String() string {
	return time.Time(d).Format(time.DateOnly)
}

// Result is an untyped query result: row 0 is the header, every following
// row holds one cell per header column.
type Result [][]string

// Encode builds a Result from column names and raw row values.
func Encode(columns []string, rows [][]any) (Result, error) {
	header := make([]string, len(columns))
	copy(header, columns)

	out := make(Result, 0, len(rows)+1)
	out = append(out, header)
	for i, row := range rows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("row %d has %d cells, header has %d: %w", i+1, len(row), len(header), ErrArity)
		}
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = CellToString(v)
		}
		out = append(out, cells)
	}
	return out, nil
}

// CellToString renders a store value in its default textual form.
// NULL becomes the empty string.
func CellToString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case uint16:
		return strconv.FormatUint(uint64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case Date:
		return x.String()
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case driver.Valuer:
		inner, err := x.Value()
		if err != nil {
			return fmt.Sprint(v)
		}
		if _, again := inner.(driver.Valuer); again {
			return fmt.Sprint(inner)
		}
		return CellToString(inner)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}

// Header returns the column names, or nil for an empty Result.
func (r Result) Header() []string {
	if len(r) == 0 {
		return nil
	}
	return r[0]
}

// Rows returns the data rows without the header.
func (r Result) Rows() [][]string {
	if len(r) < 2 {
		return nil
	}
	return r[1:]
}

// Len is the number of data rows.
func (r Result) Len() int {
	if len(r) == 0 {
		return 0
	}
	return len(r) - 1
}

// Validate checks that every data row has exactly as many cells as the header.
func (r Result) Validate() error {
	if len(r) == 0 {
		return errors.New("result has no header row")
	}
	width := len(r[0])
	for i, row := range r[1:] {
		if len(row) != width {
			return fmt.Errorf("row %d has %d cells, header has %d: %w", i+1, len(row), width, ErrArity)
		}
	}
	return nil
}

// Column returns the index of the named header column, or -1.
func (r Result) Column(name string) int {
	for i, col := range r.Header() {
		if col == name {
			return i
		}
	}
	return -1
}

// Records returns each data row keyed by header name.
func (r Result) Records() []map[string]string {
	header := r.Header()
	rows := r.Rows()
	out := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		rec := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		out = append(out, rec)
	}
	return out
}

// Clone returns a deep copy so the caller can hold it independently.
func (r Result) Clone() Result {
	if r == nil {
		return nil
	}
	out := make(Result, len(r))
	for i, row := range r {
		out[i] = append([]string(nil), row...)
	}
	return out
}
