package tabular

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Cell is one header/value pair of a parsed row. Value is a string, a float64
// (numeric spreadsheet cells) or a bool.
type Cell struct {
	Header string
	Value  any
}

// Row keeps the cells of one source line in header order. Headers keep the
// casing and spacing found in the file.
type Row []Cell

// Headers returns the row keys in source order.
func (r Row) Headers() []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = c.Header
	}
	return out
}

// Get returns the value stored under the exact header.
func (r Row) Get(header string) (any, bool) {
	for _, c := range r {
		if c.Header == header {
			return c.Value, true
		}
	}
	return nil, false
}

// set overwrites an existing header in place, like assigning an object key twice.
func (r Row) set(header string, value any) Row {
	for i := range r {
		if r[i].Header == header {
			r[i].Value = value
			return r
		}
	}
	return append(r, Cell{Header: header, Value: value})
}

// MarshalJSON encodes the row as an object with keys in source order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(c.Header)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(c.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ValueString renders a cell value the way it would print as text. Whole
// numbers print without a decimal part, so 5550002222 stays 5550002222.
func ValueString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
