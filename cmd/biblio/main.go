// Command biblio is the console front end for the Bibliotheca catalog.
// It loads the XML source document once at startup and serves read-only
// queries, either through the interactive browse menu or as one-shot
// subcommands, with optional XML/JSON export of any listing.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/Bibliotheca/core/catalog"
	"github.com/FocuswithJustin/Bibliotheca/internal/config"
	"github.com/FocuswithJustin/Bibliotheca/internal/console"
	"github.com/FocuswithJustin/Bibliotheca/internal/export"
	"github.com/FocuswithJustin/Bibliotheca/internal/loader"
	"github.com/FocuswithJustin/Bibliotheca/internal/logging"
)

const version = "0.1.0"

// CLI defines the command-line interface for biblio.
var CLI struct {
	// Global flags; unset flags fall back to the environment config.
	Data      string `help:"Path to the XML source document" type:"path"`
	Exports   string `help:"Export directory" type:"path"`
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" help:"Log format (text, json)"`

	Browse    BrowseCmd    `cmd:"" default:"1" help:"Interactive menu session"`
	Books     BooksGroup   `cmd:"" help:"Book listings and search"`
	Borrowers BorrowersCmd `cmd:"" help:"List active borrowers"`
	Version   VersionCmd   `cmd:"" help:"Print version information"`
}

// BooksGroup contains the one-shot book listing commands.
type BooksGroup struct {
	List       ListCmd       `cmd:"" help:"List all books"`
	Search     SearchCmd     `cmd:"" help:"Search books by title, author name, or category"`
	Available  AvailableCmd  `cmd:"" help:"List books with no loan on record"`
	Borrowed   BorrowedCmd   `cmd:"" help:"List books with at least one loan on record"`
	Overdue    OverdueCmd    `cmd:"" help:"List books on overdue loans"`
	ByAuthor   ByAuthorCmd   `cmd:"" name:"by-author" help:"List books grouped by author"`
	ByCategory ByCategoryCmd `cmd:"" name:"by-category" help:"List books grouped by category"`
}

// app is the loaded runtime every command runs against.
type app struct {
	lib    *catalog.Library
	writer export.Writer
}

// setup resolves configuration, initializes logging, and loads the catalog.
// A load failure is reported textually and the program continues with an
// empty store.
func setup() *app {
	cfg := config.Load()
	if CLI.Data != "" {
		cfg.DataFile = CLI.Data
	}
	if CLI.Exports != "" {
		cfg.ExportDir = CLI.Exports
	}
	if CLI.LogLevel != "" {
		cfg.LogLevel = CLI.LogLevel
	}
	if CLI.LogFormat != "" {
		cfg.LogFormat = CLI.LogFormat
	}
	logging.InitLogger(logging.ParseLevel(cfg.LogLevel), logging.ParseFormat(cfg.LogFormat))

	lib, _, err := loader.Load(cfg.DataFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading catalog: %v\n", err)
	}

	return &app{lib: lib, writer: export.Writer{Dir: cfg.ExportDir}}
}

// maybeExport writes the listed records when an export format was requested.
func maybeExport(a *app, format, title string, records []catalog.Record) error {
	var res export.Result
	var err error
	switch format {
	case "":
		return nil
	case "xml":
		res, err = a.writer.XML(title, records)
	case "json":
		res, err = a.writer.JSON(title, records)
	}
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	fmt.Printf("Exported %d records to %s\n", res.Count, res.Path)
	return nil
}

func printBooks(books []*catalog.Book) {
	if len(books) == 0 {
		fmt.Println("Nothing to list.")
		return
	}
	for _, b := range books {
		fmt.Printf("- %s\n", b)
	}
}

// BrowseCmd runs the interactive menu session.
type BrowseCmd struct{}

func (c *BrowseCmd) Run() error {
	a := setup()
	return console.New(a.lib, a.writer, os.Stdin, os.Stdout).Run()
}

// ListCmd lists all books.
type ListCmd struct {
	Export string `enum:"xml,json," default:"" help:"Write the listing as an export file (xml or json)"`
}

func (c *ListCmd) Run() error {
	a := setup()
	books := a.lib.Books()
	printBooks(books)
	return maybeExport(a, c.Export, "All books", export.Records(books))
}

// SearchCmd searches books by a case-insensitive term.
type SearchCmd struct {
	Term   string `arg:"" optional:"" help:"Search term (empty matches everything)"`
	Export string `enum:"xml,json," default:"" help:"Write the listing as an export file (xml or json)"`
}

func (c *SearchCmd) Run() error {
	a := setup()
	books := a.lib.SearchBooks(c.Term)
	printBooks(books)
	return maybeExport(a, c.Export, "Search results", export.Records(books))
}

// AvailableCmd lists books with no loan on record.
type AvailableCmd struct {
	Export string `enum:"xml,json," default:"" help:"Write the listing as an export file (xml or json)"`
}

func (c *AvailableCmd) Run() error {
	a := setup()
	books := a.lib.AvailableBooks()
	printBooks(books)
	return maybeExport(a, c.Export, "Available books", export.Records(books))
}

// BorrowedCmd lists books with at least one loan on record.
type BorrowedCmd struct {
	Export string `enum:"xml,json," default:"" help:"Write the listing as an export file (xml or json)"`
}

func (c *BorrowedCmd) Run() error {
	a := setup()
	books := a.lib.BorrowedBooks()
	printBooks(books)
	return maybeExport(a, c.Export, "Borrowed books", export.Records(books))
}

// OverdueCmd lists the book of every loan overdue right now.
type OverdueCmd struct {
	Export string `enum:"xml,json," default:"" help:"Write the listing as an export file (xml or json)"`
}

func (c *OverdueCmd) Run() error {
	a := setup()
	books := a.lib.OverdueBooks(time.Now())
	printBooks(books)
	return maybeExport(a, c.Export, "Overdue books", export.Records(books))
}

// ByAuthorCmd lists books grouped by author name.
type ByAuthorCmd struct {
	Export string `enum:"xml,json," default:"" help:"Write the listing as an export file (xml or json)"`
}

func (c *ByAuthorCmd) Run() error {
	a := setup()
	return printGroups(a, c.Export, "Books by author", catalog.BooksByAuthor(a.lib))
}

// ByCategoryCmd lists books grouped by category.
type ByCategoryCmd struct {
	Export string `enum:"xml,json," default:"" help:"Write the listing as an export file (xml or json)"`
}

func (c *ByCategoryCmd) Run() error {
	a := setup()
	return printGroups(a, c.Export, "Books by category", catalog.BooksByCategory(a.lib))
}

func printGroups(a *app, format, title string, groups []catalog.BookGroup) error {
	var flat []*catalog.Book
	for _, g := range groups {
		fmt.Printf("%s:\n", g.Key)
		for _, b := range g.Books {
			fmt.Printf("  - %s (%s)\n", b.Title, b.Category)
			flat = append(flat, b)
		}
	}
	if len(groups) == 0 {
		fmt.Println("Nothing to list.")
	}
	return maybeExport(a, format, title, export.Records(flat))
}

// BorrowersCmd lists borrowers with at least one loan.
type BorrowersCmd struct {
	Export string `enum:"xml,json," default:"" help:"Write the listing as an export file (xml or json)"`
}

func (c *BorrowersCmd) Run() error {
	a := setup()
	borrowers := catalog.ActiveBorrowers(a.lib)
	if len(borrowers) == 0 {
		fmt.Println("No active borrowers.")
	}
	for _, b := range borrowers {
		fmt.Printf("- %s\n", b)
	}
	return maybeExport(a, c.Export, "Active borrowers", export.Records(borrowers))
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("biblio %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("biblio"),
		kong.Description("Console browser for an XML-loaded library catalog."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run())
}
