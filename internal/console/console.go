// Package console implements the interactive menu session over the catalog.
// It is presentation glue only: every listing is a pure catalog query, and
// exports go through the export writer with the records the query returned.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/FocuswithJustin/Bibliotheca/core/catalog"
	"github.com/FocuswithJustin/Bibliotheca/internal/export"
)

// Session is one interactive console run over a loaded catalog.
type Session struct {
	lib     *catalog.Library
	exports export.Writer
	in      *bufio.Scanner
	out     io.Writer
	now     func() time.Time
}

// New builds a session reading choices from in and printing to out.
func New(lib *catalog.Library, exports export.Writer, in io.Reader, out io.Writer) *Session {
	return &Session{
		lib:     lib,
		exports: exports,
		in:      bufio.NewScanner(in),
		out:     out,
		now:     time.Now,
	}
}

// Run shows the main menu until the user quits or input ends.
func (s *Session) Run() error {
	for {
		fmt.Fprintln(s.out, "\n=== Main Menu ===")
		fmt.Fprintln(s.out, "1. List all books")
		fmt.Fprintln(s.out, "2. Search books")
		fmt.Fprintln(s.out, "3. Available books")
		fmt.Fprintln(s.out, "4. Borrowed books")
		fmt.Fprintln(s.out, "5. Overdue books")
		fmt.Fprintln(s.out, "6. Books by author")
		fmt.Fprintln(s.out, "7. Books by category")
		fmt.Fprintln(s.out, "8. Active borrowers")
		fmt.Fprintln(s.out, "Q. Quit")

		choice, ok := s.prompt("\nYour choice: ")
		if !ok {
			return nil
		}

		switch strings.ToUpper(choice) {
		case "1":
			s.listAllBooks()
		case "2":
			s.searchBooks()
		case "3":
			s.listBooks("Available books", s.lib.AvailableBooks())
		case "4":
			s.listBooks("Borrowed books", s.lib.BorrowedBooks())
		case "5":
			s.listBooks("Overdue books", s.lib.OverdueBooks(s.now()))
		case "6":
			s.listGroups("Books by author", catalog.BooksByAuthor(s.lib))
		case "7":
			s.listGroups("Books by category", catalog.BooksByCategory(s.lib))
		case "8":
			s.listBorrowers()
		case "Q":
			fmt.Fprintln(s.out, "Goodbye!")
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid choice, try again.")
		}
	}
}

func (s *Session) listAllBooks() {
	books := s.lib.Books()
	fmt.Fprintln(s.out, "\n=== All books ===")
	if len(books) == 0 {
		fmt.Fprintln(s.out, "No books in the catalog.")
		return
	}

	for _, b := range books {
		fmt.Fprintln(s.out)
		for _, f := range b.Fields() {
			fmt.Fprintf(s.out, "%s: %s\n", f.Name, f.Value)
		}
		fmt.Fprintln(s.out, "-------------------")
	}
	s.exportMenu("All books", export.Records(books))
}

func (s *Session) searchBooks() {
	term, ok := s.prompt("\nSearch term: ")
	if !ok {
		return
	}

	results := s.lib.SearchBooks(term)
	fmt.Fprintln(s.out, "\n=== Search results ===")
	if len(results) == 0 {
		fmt.Fprintln(s.out, "No results found.")
		return
	}
	for _, b := range results {
		fmt.Fprintf(s.out, "- %s\n", b)
	}
	s.exportMenu("Search results", export.Records(results))
}

func (s *Session) listBooks(title string, books []*catalog.Book) {
	fmt.Fprintf(s.out, "\n=== %s ===\n", title)
	if len(books) == 0 {
		fmt.Fprintln(s.out, "Nothing to list.")
		return
	}
	for _, b := range books {
		fmt.Fprintf(s.out, "- %s by %s\n", b.Title, b.Author.Name)
	}
	s.exportMenu(title, export.Records(books))
}

func (s *Session) listGroups(title string, groups []catalog.BookGroup) {
	fmt.Fprintf(s.out, "\n=== %s ===\n", title)
	if len(groups) == 0 {
		fmt.Fprintln(s.out, "Nothing to list.")
		return
	}

	var flat []*catalog.Book
	for _, g := range groups {
		fmt.Fprintf(s.out, "\n%s:\n", g.Key)
		for _, b := range g.Books {
			fmt.Fprintf(s.out, "  - %s (%s)\n", b.Title, b.Category)
			flat = append(flat, b)
		}
	}
	s.exportMenu(title, export.Records(flat))
}

func (s *Session) listBorrowers() {
	borrowers := catalog.ActiveBorrowers(s.lib)
	fmt.Fprintln(s.out, "\n=== Active borrowers ===")
	if len(borrowers) == 0 {
		fmt.Fprintln(s.out, "No active borrowers.")
		return
	}
	for _, b := range borrowers {
		fmt.Fprintf(s.out, "- %s\n", b)
	}
	s.exportMenu("Active borrowers", export.Records(borrowers))
}

// exportMenu offers to export the listed records, with an optional
// field-subset selection before writing.
func (s *Session) exportMenu(title string, records []catalog.Record) {
	fmt.Fprintf(s.out, "\n=== Export: %s ===\n", title)
	fmt.Fprintln(s.out, "1. Export as XML")
	fmt.Fprintln(s.out, "2. Export as JSON")
	fmt.Fprintln(s.out, "3. Back to main menu")

	choice, ok := s.prompt("\nYour choice: ")
	if !ok {
		return
	}

	var write func(string, []catalog.Record) (export.Result, error)
	switch choice {
	case "1":
		write = s.exports.XML
	case "2":
		write = s.exports.JSON
	case "3":
		return
	default:
		fmt.Fprintln(s.out, "Invalid choice.")
		return
	}

	records = s.selectFields(records)

	res, err := write(title, records)
	if err != nil {
		fmt.Fprintf(s.out, "Export failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Exported %d records to %s\n", res.Count, res.Path)
}

// selectFields optionally restricts the records to a chosen subset of their
// fields. The subset is picked by number from the first record's field list;
// an empty answer keeps every field.
func (s *Session) selectFields(records []catalog.Record) []catalog.Record {
	if len(records) == 0 {
		return records
	}

	names := catalog.FieldNames(records[0])
	fmt.Fprintln(s.out, "\nFields:")
	for i, n := range names {
		fmt.Fprintf(s.out, "  %d. %s\n", i+1, n)
	}

	answer, ok := s.prompt("Fields to export (comma-separated numbers, empty for all): ")
	if !ok || strings.TrimSpace(answer) == "" {
		return records
	}

	var chosen []string
	for _, part := range strings.Split(answer, ",") {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || idx < 1 || idx > len(names) {
			continue
		}
		chosen = append(chosen, names[idx-1])
	}
	if len(chosen) == 0 {
		return records
	}

	out := make([]catalog.Record, len(records))
	for i, r := range records {
		out[i] = catalog.Project(r, chosen)
	}
	return out
}

func (s *Session) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}
