package tushare

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/bankreport/date"
	"github.com/shopspring/decimal"
)

// table is the data part of an answer: column names and rows of values.
//
//	{
//	  "request_id": "6c3f...",
//	  "code": 0,
//	  "msg": "",
//	  "data": {
//	    "fields": ["ts_code", "trade_date", "close"],
//	    "items": [["601398.SH", "20250704", 7.2]],
//	    "has_more": false
//	  }
//	}
type table struct {
	fields map[string]int
	items  [][]any
}

// decodeTable extracts the table from a decoded answer, or the API error it carries.
func decodeTable(api string, jobj any) (*table, error) {
	code, err := jint(jobj, "$.code")
	if err != nil {
		return nil, fmt.Errorf("%s: invalid answer: %w", api, err)
	}
	if code != 0 {
		msg, _ := jscalar(jobj, "$.msg")
		s, _ := msg.(string)
		return nil, &APIError{API: api, Code: code, Msg: s}
	}
	if data, err := jget(jobj, "$.data"); err != nil || data == nil {
		return &table{}, nil
	}

	jfields, err := jget(jobj, "$.data.fields")
	if err != nil {
		return nil, fmt.Errorf("%s: invalid answer: %w", api, err)
	}
	names, ok := jfields.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: invalid answer: fields is %T", api, jfields)
	}
	t := &table{fields: make(map[string]int, len(names))}
	for i, n := range names {
		s, ok := n.(string)
		if !ok {
			return nil, fmt.Errorf("%s: invalid answer: field %d is %T", api, i, n)
		}
		t.fields[s] = i
	}

	jitems, err := jget(jobj, "$.data.items")
	if err != nil || jitems == nil {
		// some endpoints omit items when there is nothing to return
		return t, nil
	}
	items, ok := jitems.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: invalid answer: items is %T", api, jitems)
	}
	for i, it := range items {
		row, ok := it.([]any)
		if !ok {
			return nil, fmt.Errorf("%s: invalid answer: item %d is %T", api, i, it)
		}
		t.items = append(t.items, row)
	}
	return t, nil
}

// jget evaluates a JSON path on obj.
func jget(obj any, path string) (any, error) { return jsonpath.Get(path, obj) }

// jscalar is like jget for paths that denote a single value.
func jscalar(obj any, path string) (any, error) {
	jval, err := jget(obj, path)
	if err != nil {
		return nil, err
	}
	// because jsonpath is never clear about whether it returns a list of 1 answer, or a single answer
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	return jval, nil
}

func jint(obj any, path string) (int64, error) {
	jval, err := jscalar(obj, path)
	if err != nil {
		return 0, err
	}
	switch v := jval.(type) {
	case json.Number:
		return v.Int64()
	case float64:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("%s is %T, not a number", path, jval)
	}
}

func (t *table) len() int {
	if t == nil {
		return 0
	}
	return len(t.items)
}

// row is a single item of a table, read by field name.
type row struct {
	t      *table
	values []any
}

func (t *table) rows() []row {
	rows := make([]row, t.len())
	for i, v := range t.items {
		rows[i] = row{t, v}
	}
	return rows
}

// get returns the raw value of field, nil if absent.
func (r row) get(field string) any {
	i, ok := r.t.fields[field]
	if !ok || i >= len(r.values) {
		return nil
	}
	return r.values[i]
}

// has reports whether field is a column of the answer.
func (r row) has(field string) bool {
	_, ok := r.t.fields[field]
	return ok
}

func (r row) str(field string) string {
	switch v := r.get(field).(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// dec reads a number. Null, missing and unparsable values are invalid.
func (r row) dec(field string) decimal.NullDecimal {
	var s string
	switch v := r.get(field).(type) {
	case json.Number:
		s = v.String()
	case string:
		s = v
	case float64:
		return decimal.NewNullDecimal(decimal.NewFromFloat(v))
	default:
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// date reads a YYYYMMDD date. An empty value is the zero date.
func (r row) date(field string) (date.Date, error) {
	s := r.str(field)
	if s == "" {
		return date.Date{}, nil
	}
	return date.ParseCompact(s)
}
