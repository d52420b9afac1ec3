package export

import (
	stdjson "encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/FocuswithJustin/Bibliotheca/core/catalog"
)

func testRecords() []catalog.Record {
	orwell := &catalog.Author{ID: 1, Name: "George Orwell", Nationality: "British"}
	book := &catalog.Book{ID: 1, Title: "Cakes & Ale <draft>", Author: orwell, Category: "Satire"}
	return []catalog.Record{book}
}

func TestXMLExport(t *testing.T) {
	w := Writer{Dir: t.TempDir()}

	res, err := w.XML("All books", testRecords())
	if err != nil {
		t.Fatalf("XML export failed: %v", err)
	}
	if res.ID == "" {
		t.Error("export result has no id")
	}
	if res.Count != 1 {
		t.Errorf("res.Count = %d, want 1", res.Count)
	}

	data, err := os.ReadFile(res.Path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		"<Title>All books</Title>",
		"<ExportId>" + res.ID + "</ExportId>",
		"<Title>Cakes &amp; Ale &lt;draft&gt;</Title>",
		"<Author>George Orwell (British)</Author>",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("XML export missing %q\n%s", want, content)
		}
	}

	name := res.Path[strings.LastIndex(res.Path, "/")+1:]
	if !strings.HasPrefix(name, "export_") || !strings.HasSuffix(name, ".xml") {
		t.Errorf("filename %q not timestamp-stamped xml", name)
	}
}

func TestJSONExport(t *testing.T) {
	w := Writer{Dir: t.TempDir()}

	res, err := w.JSON("Search results", testRecords())
	if err != nil {
		t.Fatalf("JSON export failed: %v", err)
	}

	data, err := os.ReadFile(res.Path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}

	var env struct {
		ExportID string              `json:"export_id"`
		Title    string              `json:"title"`
		Items    []map[string]string `json:"items"`
	}
	if err := stdjson.Unmarshal(data, &env); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}

	if env.ExportID != res.ID {
		t.Errorf("export_id = %q, want %q", env.ExportID, res.ID)
	}
	if env.Title != "Search results" {
		t.Errorf("title = %q, want Search results", env.Title)
	}
	if len(env.Items) != 1 {
		t.Fatalf("items length = %d, want 1", len(env.Items))
	}
	if env.Items[0]["Title"] != "Cakes & Ale <draft>" {
		t.Errorf("item Title = %q, want raw value", env.Items[0]["Title"])
	}
}

func TestExportCreatesDirectory(t *testing.T) {
	dir := t.TempDir() + "/Exports"
	w := Writer{Dir: dir}

	if _, err := w.JSON("Empty", nil); err != nil {
		t.Fatalf("JSON export failed: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("export directory not created: %v", err)
	}
}

func TestExportProjectedRecords(t *testing.T) {
	w := Writer{Dir: t.TempDir()}

	projected := make([]catalog.Record, 0, 1)
	for _, r := range testRecords() {
		projected = append(projected, catalog.Project(r, []string{"Id", "Title"}))
	}

	res, err := w.XML("Subset", projected)
	if err != nil {
		t.Fatalf("XML export failed: %v", err)
	}
	data, _ := os.ReadFile(res.Path)
	if strings.Contains(string(data), "<Category>") {
		t.Error("projected export contains an unselected field")
	}
	if !strings.Contains(string(data), "<Id>1</Id>") {
		t.Error("projected export missing selected field")
	}
}

func TestRecordsHelper(t *testing.T) {
	books := []*catalog.Book{
		{ID: 1, Title: "A", Author: &catalog.Author{Name: "X"}},
		{ID: 2, Title: "B", Author: &catalog.Author{Name: "Y"}},
	}
	records := Records(books)
	if len(records) != 2 {
		t.Fatalf("Records length = %d, want 2", len(records))
	}
	if len(records[0].Fields()) == 0 {
		t.Error("converted record has no fields")
	}
}
