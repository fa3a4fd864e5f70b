// Package output renders projected command results as JSON, YAML, tables or plain text.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"pinctl/pkg/colors"
	"pinctl/pkg/errors"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// Format is an output format name
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
	FormatText  Format = "text"
)

// Formats lists the supported formats
var Formats = []Format{FormatJSON, FormatYAML, FormatTable, FormatText}

// ParseFormat validates a format name; empty means JSON
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatJSON, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", errors.NewValidationError(fmt.Sprintf("unknown output format %q (expected json, yaml, table or text)", s))
}

// sdkFields are dropped from every rendered record
var sdkFields = map[string]bool{
	"ResultMetadata": true,
}

// Renderer writes values in one format
type Renderer struct {
	w         io.Writer
	format    Format
	keepNulls bool
}

// NewRenderer creates a renderer writing to w
func NewRenderer(w io.Writer, format Format) *Renderer {
	return &Renderer{w: w, format: format}
}

// KeepNulls renders null entries instead of dropping them. Used for echoed
// parameters, where a null map entry is part of the input.
func (r *Renderer) KeepNulls() *Renderer {
	r.keepNulls = true
	return r
}

// Render writes v. SDK response structs, pointers and plain values are all accepted.
func (r *Renderer) Render(v interface{}) error {
	doc, err := normalize(v, !r.keepNulls)
	if err != nil {
		return err
	}

	switch r.format {
	case FormatYAML:
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case FormatTable:
		return r.renderTable(doc)
	case FormatText:
		return r.renderText(doc)
	default:
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}
}

// Normalize converts v into plain maps, slices and scalars through its JSON form.
// Null fields and SDK metadata are removed; a nil input stays nil.
func Normalize(v interface{}) (interface{}, error) {
	return normalize(v, true)
}

func normalize(v interface{}, pruneNulls bool) (interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode result: %w", err)
	}
	return prune(doc, pruneNulls), nil
}

func prune(v interface{}, nulls bool) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, child := range t {
			if sdkFields[k] || (nulls && child == nil) {
				delete(t, k)
				continue
			}
			t[k] = prune(child, nulls)
		}
		return t
	case []interface{}:
		for i := range t {
			t[i] = prune(t[i], nulls)
		}
		return t
	}
	return v
}

func (r *Renderer) renderTable(doc interface{}) error {
	switch t := doc.(type) {
	case nil:
		return nil
	case []interface{}:
		if len(t) == 0 {
			colors.FprintHeader(r.w, "No items found\n")
			return nil
		}
		if records, ok := asRecords(t); ok {
			return r.recordTable(records)
		}
		table := tablewriter.NewWriter(r.w)
		table.Header("Value")
		for _, item := range t {
			_ = table.Append([]string{cell(item)})
		}
		return table.Render()
	case map[string]interface{}:
		if items, key, ok := singleList(t); ok {
			colors.FprintHeader(r.w, "%s\n", key)
			return r.renderTable(items)
		}
		table := tablewriter.NewWriter(r.w)
		table.Header("Property", "Value")
		for _, k := range sortedKeys(t) {
			_ = table.Append([]string{k, cell(t[k])})
		}
		return table.Render()
	default:
		_, err := fmt.Fprintln(r.w, cell(t))
		return err
	}
}

// recordTable renders a list of records with one column per scalar field
func (r *Renderer) recordTable(records []map[string]interface{}) error {
	seen := make(map[string]bool)
	var columns []string
	for _, rec := range records {
		for k := range rec {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
	}
	sort.Strings(columns)

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}

	table := tablewriter.NewWriter(r.w)
	table.Header(header...)
	for _, rec := range records {
		row := make([]string, len(columns))
		for i, c := range columns {
			if v, ok := rec[c]; ok {
				row[i] = cell(v)
			}
		}
		_ = table.Append(row)
	}
	return table.Render()
}

func (r *Renderer) renderText(doc interface{}) error {
	switch t := doc.(type) {
	case nil:
		return nil
	case []interface{}:
		for _, item := range t {
			if _, err := fmt.Fprintln(r.w, cell(item)); err != nil {
				return err
			}
		}
		return nil
	case map[string]interface{}:
		for _, k := range sortedKeys(t) {
			if _, err := fmt.Fprintf(r.w, "%s\t%s\n", k, cell(t[k])); err != nil {
				return err
			}
		}
		return nil
	default:
		_, err := fmt.Fprintln(r.w, cell(t))
		return err
	}
}

// asRecords reports whether every item is a record
func asRecords(items []interface{}) ([]map[string]interface{}, bool) {
	records := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		rec, ok := item.(map[string]interface{})
		if !ok {
			return nil, false
		}
		records = append(records, rec)
	}
	return records, true
}

// singleList detects list wrappers such as {"Item": [...], "NextToken": "..."} and
// returns the list when it is the only non-scalar field
func singleList(m map[string]interface{}) ([]interface{}, string, bool) {
	var list []interface{}
	var key string
	for k, v := range m {
		switch t := v.(type) {
		case []interface{}:
			if list != nil {
				return nil, "", false
			}
			list, key = t, k
		case map[string]interface{}:
			return nil, "", false
		}
	}
	return list, key, list != nil
}

// cell formats a value for a single table cell
func cell(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return colorize(t)
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case bool:
		return fmt.Sprintf("%t", t)
	case []interface{}:
		parts := make([]string, 0, len(t))
		scalar := true
		for _, item := range t {
			switch item.(type) {
			case map[string]interface{}, []interface{}:
				scalar = false
			}
			parts = append(parts, cell(item))
		}
		if scalar {
			return strings.Join(parts, ", ")
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

// colorize highlights delivery and status values when colors are enabled
func colorize(s string) string {
	if !colors.Enabled() {
		return s
	}
	return colors.ColorStatus(s)
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
