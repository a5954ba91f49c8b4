// Package metadata loads the call scheduling table that places each
// recorded call on a subject's study calendar.
package metadata

import (
	_ "embed"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema.json
var schemaJSON string

// defaultPrinter formats schema validation error messages.
var defaultPrinter = message.NewPrinter(language.English)

// tableSchema is the compiled JSON Schema for metadata files.
var tableSchema *jsonschema.Schema

func init() {
	var schemaDoc any
	if err := json.Unmarshal([]byte(schemaJSON), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to parse embedded schema.json: %v", err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("metadata.schema.json", schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add schema resource: %v", err))
	}

	sch, err := compiler.Compile("metadata.schema.json")
	if err != nil {
		panic(fmt.Sprintf("failed to compile schema: %v", err))
	}
	tableSchema = sch
}

// Entry is one call's scheduling record.
type Entry struct {
	SubjectID string `json:"subject_id"`
	CallID    string `json:"call_id"`
	Week      string `json:"week"`
	Day       string `json:"day"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

// Table indexes scheduling entries by call id.
type Table map[string]Entry

// Lookup returns the entry for a call id.
func (t Table) Lookup(callID string) (Entry, bool) {
	e, ok := t[callID]
	return e, ok
}

// CallIDs returns every known call id, sorted.
func (t Table) CallIDs() []string {
	ids := make([]string, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Load reads a metadata file, dispatching on extension: .json files are
// validated against the embedded schema, anything else is read as CSV
// with a header row.
func Load(path string) (Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return loadJSON(path)
	}
	return loadCSV(path)
}

// requiredColumns are the CSV header columns, in their canonical order.
var requiredColumns = []string{"subject_id", "call_id", "week", "day", "date", "time"}

func loadCSV(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("metadata: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("metadata: parse %s: %w", path, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("metadata: %s is empty (no header row)", path)
	}

	index := map[string]int{}
	for i, h := range records[0] {
		index[strings.TrimSpace(strings.ToLower(h))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("metadata: %s is missing column %q", path, col)
		}
	}

	table := make(Table, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != len(records[0]) {
			return nil, fmt.Errorf("metadata: row %d has %d columns, expected %d", i+2, len(record), len(records[0]))
		}
		entry := Entry{
			SubjectID: record[index["subject_id"]],
			CallID:    record[index["call_id"]],
			Week:      record[index["week"]],
			Day:       record[index["day"]],
			Date:      record[index["date"]],
			Time:      record[index["time"]],
		}
		if err := addEntry(table, entry, i+2); err != nil {
			return nil, err
		}
	}
	return table, nil
}

func loadJSON(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("metadata: read %s: %w", path, err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("metadata: parse %s: %w", path, err)
	}

	if errs := validateAgainstSchema(doc); len(errs) > 0 {
		return nil, fmt.Errorf("metadata: %s failed validation:\n  %s", path, strings.Join(errs, "\n  "))
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("metadata: decode %s: %w", path, err)
	}

	table := make(Table, len(entries))
	for i, entry := range entries {
		if err := addEntry(table, entry, i); err != nil {
			return nil, err
		}
	}
	return table, nil
}

func addEntry(table Table, entry Entry, position int) error {
	if entry.CallID == "" {
		return fmt.Errorf("metadata: entry %d has an empty call_id", position)
	}
	if _, dup := table[entry.CallID]; dup {
		return fmt.Errorf("metadata: duplicate call_id %q at entry %d", entry.CallID, position)
	}
	table[entry.CallID] = entry
	return nil
}

func validateAgainstSchema(instance any) []string {
	err := tableSchema.Validate(instance)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{fmt.Sprintf("schema: %v", err)}
	}
	var errs []string
	collectSchemaErrors(ve, &errs)
	return errs
}

func collectSchemaErrors(ve *jsonschema.ValidationError, errs *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/"
		if len(ve.InstanceLocation) > 0 {
			loc = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		*errs = append(*errs, fmt.Sprintf("%s: %s", loc, ve.ErrorKind.LocalizedString(defaultPrinter)))
		return
	}
	for _, c := range ve.Causes {
		collectSchemaErrors(c, errs)
	}
}
