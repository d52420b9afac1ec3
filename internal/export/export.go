// Package export writes labeled record listings to timestamped files in the
// exports directory, as XML or JSON. The catalog never serializes itself;
// exporters consume the uniform field mapping every record exposes.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/FocuswithJustin/Bibliotheca/core/catalog"
	"github.com/FocuswithJustin/Bibliotheca/core/encoding"
	"github.com/FocuswithJustin/Bibliotheca/internal/logging"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Writer writes exports under Dir, creating it on demand.
type Writer struct {
	Dir string
}

// Result describes one written export file.
type Result struct {
	ID     string // uuid assigned to this export
	Path   string // file written
	Format string // "xml" or "json"
	Count  int    // records written
}

// jsonEnvelope is the JSON file shape. Items are the per-record field maps;
// map keys sort alphabetically, which keeps output deterministic.
type jsonEnvelope struct {
	ExportID string              `json:"export_id"`
	Title    string              `json:"title"`
	Items    []map[string]string `json:"items"`
}

// XML writes the records as an XML document:
//
//	<Data><ExportId/><Title/><Items><Item><Name>value</Name>...</Item>...</Items></Data>
//
// Element names inside each Item come from the record's field names.
func (w Writer) XML(title string, records []catalog.Record) (Result, error) {
	res := Result{ID: uuid.NewString(), Format: "xml", Count: len(records)}

	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<Data>\n")
	fmt.Fprintf(&b, "  <ExportId>%s</ExportId>\n", res.ID)
	fmt.Fprintf(&b, "  <Title>%s</Title>\n", encoding.EscapeXMLText(title))
	b.WriteString("  <Items>\n")
	for _, r := range records {
		b.WriteString("    <Item>\n")
		for _, f := range r.Fields() {
			fmt.Fprintf(&b, "      <%s>%s</%s>\n", f.Name, encoding.EscapeXMLText(f.Value), f.Name)
		}
		b.WriteString("    </Item>\n")
	}
	b.WriteString("  </Items>\n")
	b.WriteString("</Data>\n")

	path, err := w.write(res.ID, "xml", []byte(b.String()))
	if err != nil {
		return Result{}, err
	}
	res.Path = path
	return res, nil
}

// JSON writes the records as an indented JSON document with an export id,
// the label, and one field map per record.
func (w Writer) JSON(title string, records []catalog.Record) (Result, error) {
	res := Result{ID: uuid.NewString(), Format: "json", Count: len(records)}

	env := jsonEnvelope{
		ExportID: res.ID,
		Title:    title,
		Items:    make([]map[string]string, 0, len(records)),
	}
	for _, r := range records {
		item := make(map[string]string)
		for _, f := range r.Fields() {
			item[f.Name] = f.Value
		}
		env.Items = append(env.Items, item)
	}

	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return Result{}, fmt.Errorf("marshaling export: %w", err)
	}

	path, err := w.write(res.ID, "json", data)
	if err != nil {
		return Result{}, err
	}
	res.Path = path
	return res, nil
}

// write creates the exports directory if needed and writes the file with a
// filename stamped to the second.
func (w Writer) write(id, ext string, data []byte) (string, error) {
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	name := fmt.Sprintf("export_%s.%s", time.Now().Format("20060102_150405"), ext)
	path := filepath.Join(w.Dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing export: %w", err)
	}

	logging.Info("export written", "export_id", id, "path", path, "format", ext)
	return path, nil
}

// Records generalizes a typed slice to the Record interface for export.
func Records[T catalog.Record](items []T) []catalog.Record {
	out := make([]catalog.Record, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}
