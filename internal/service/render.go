package service

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

type ViewKind string

const (
	ViewTable ViewKind = "table"
	ViewText  ViewKind = "text"
)

// View is the display form of a nutrition response: structured responses
// become a table, scalars become text.
type View struct {
	Kind    ViewKind   `json:"kind"`
	Columns []string   `json:"columns,omitempty"`
	Rows    [][]string `json:"rows,omitempty"`
	Text    string     `json:"text,omitempty"`
}

func BuildView(data any) View {
	switch v := data.(type) {
	case map[string]any:
		return objectView(v)
	case []any:
		return arrayView(v)
	default:
		return View{Kind: ViewText, Text: formatValue(v)}
	}
}

// objectView lays an object out as field/value pairs. Nested objects are
// flattened with dotted keys.
func objectView(obj map[string]any) View {
	flat := make(map[string]string)
	flatten("", obj, flat)

	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, flat[k]})
	}
	return View{Kind: ViewTable, Columns: []string{"field", "value"}, Rows: rows}
}

func arrayView(items []any) View {
	objects := make([]map[string]any, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			objects = nil
			break
		}
		objects = append(objects, obj)
	}

	if len(objects) == 0 {
		rows := make([][]string, 0, len(items))
		for _, item := range items {
			rows = append(rows, []string{formatValue(item)})
		}
		return View{Kind: ViewTable, Columns: []string{"value"}, Rows: rows}
	}

	flats := make([]map[string]string, 0, len(objects))
	seen := make(map[string]struct{})
	var columns []string
	for _, obj := range objects {
		flat := make(map[string]string)
		flatten("", obj, flat)
		for k := range flat {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				columns = append(columns, k)
			}
		}
		flats = append(flats, flat)
	}
	sort.Strings(columns)

	rows := make([][]string, 0, len(flats))
	for _, flat := range flats {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = flat[col]
		}
		rows = append(rows, row)
	}
	return View{Kind: ViewTable, Columns: columns, Rows: rows}
}

func flatten(prefix string, obj map[string]any, out map[string]string) {
	for k, v := range obj {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok && len(nested) > 0 {
			flatten(key, nested, out)
			continue
		}
		out[key] = formatValue(v)
	}
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case map[string]any, []any:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	default:
		return fmt.Sprint(t)
	}
}
