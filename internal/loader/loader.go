// Package loader builds a catalog from an XML source document.
//
// Loading is deliberately tolerant: scalar fields that fail to parse fall
// back to defaults, and records whose cross-references cannot be resolved
// are dropped rather than failing the load. The only raised errors are a
// missing source file and a malformed document; everything else is absorbed
// and counted in Stats so operators can still see what was lost.
package loader

import (
	"bytes"
	"encoding/hex"
	"io"
	"os"
	"time"

	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/Bibliotheca/core/catalog"
	"github.com/FocuswithJustin/Bibliotheca/core/errors"
	"github.com/FocuswithJustin/Bibliotheca/core/xmldoc"
	"github.com/FocuswithJustin/Bibliotheca/internal/logging"
)

// DefaultLoanDays is the loan duration applied when a loan record carries no
// parseable due date.
const DefaultLoanDays = 14

// Stats describes what a load run did: how many records of each kind made it
// into the store, how many were dropped for unresolvable references, and how
// many scalar fields fell back to their defaults. SourceHash is the BLAKE3
// hash of the raw source bytes.
type Stats struct {
	SourceHash string `json:"source_hash"`

	Authors   int `json:"authors"`
	Borrowers int `json:"borrowers"`
	Books     int `json:"books"`
	Loans     int `json:"loans"`

	DroppedBooks    int `json:"dropped_books"`
	DroppedLoans    int `json:"dropped_loans"`
	DefaultedFields int `json:"defaulted_fields"`
}

// Load reads the XML document at path and builds a fresh library from it.
// Entity kinds are loaded in a fixed order (authors, borrowers, books, loans)
// because books resolve their author against the already-loaded author set
// and loans resolve both book and borrower the same way. Records are matched
// by element name anywhere in the document tree.
//
// A missing file yields a *errors.SourceNotFoundError and a malformed
// document a *errors.ParseError; both leave the returned library empty.
func Load(path string) (*catalog.Library, Stats, error) {
	lib := catalog.New()
	var stats Stats

	f, err := os.Open(path)
	if err != nil {
		return lib, stats, &errors.SourceNotFoundError{Path: path, Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return lib, stats, &errors.ParseError{Format: "XML", Path: path, Message: "reading source", Err: err}
	}

	hash := blake3.Sum256(data)
	stats.SourceHash = hex.EncodeToString(hash[:])

	doc, err := xmldoc.Parse(bytes.NewReader(data))
	if err != nil {
		return lib, stats, &errors.ParseError{Format: "XML", Path: path, Message: "parsing source", Err: err}
	}

	ld := &load{lib: lib, stats: &stats, now: time.Now()}
	ld.authors(doc)
	ld.borrowers(doc)
	ld.books(doc)
	ld.loans(doc)

	logging.Info("catalog loaded",
		"path", path,
		"source_hash", stats.SourceHash,
		"authors", stats.Authors,
		"borrowers", stats.Borrowers,
		"books", stats.Books,
		"loans", stats.Loans,
		"dropped_books", stats.DroppedBooks,
		"dropped_loans", stats.DroppedLoans,
		"defaulted_fields", stats.DefaultedFields,
	)

	return lib, stats, nil
}

// load carries the per-run state so the four entity passes share the target
// library, the counters, and a single "now" for date defaults.
type load struct {
	lib   *catalog.Library
	stats *Stats
	now   time.Time
}

func (ld *load) authors(doc *xmldoc.Document) {
	for _, n := range descendants(doc, "Author") {
		ld.lib.AddAuthor(&catalog.Author{
			ID:          ld.intField(n, "Id"),
			Name:        n.ChildText("Name"),
			Nationality: n.ChildText("Nationality"),
			BirthDate:   ld.dateField(n, "BirthDate"),
		})
	}
	ld.stats.Authors = len(ld.lib.Authors())
}

func (ld *load) borrowers(doc *xmldoc.Document) {
	for _, n := range descendants(doc, "Borrower") {
		ld.lib.AddBorrower(&catalog.Borrower{
			ID:    ld.intField(n, "Id"),
			Name:  n.ChildText("Name"),
			Email: n.ChildText("Email"),
			Phone: n.ChildText("Phone"),
		})
	}
	ld.stats.Borrowers = len(ld.lib.Borrowers())
}

func (ld *load) books(doc *xmldoc.Document) {
	for _, n := range descendants(doc, "Book") {
		author, ok := ld.lib.AuthorByID(ld.intField(n, "AuthorId"))
		if !ok {
			ld.stats.DroppedBooks++
			logging.Debug("dropping book with unresolvable author",
				"book_id", n.ChildText("Id"), "author_id", n.ChildText("AuthorId"))
			continue
		}
		ld.lib.AddBook(&catalog.Book{
			ID:              ld.intField(n, "Id"),
			Title:           n.ChildText("Title"),
			Author:          author,
			PublicationDate: ld.dateField(n, "PublicationDate"),
			ISBN:            n.ChildText("ISBN"),
			Category:        n.ChildText("Category"),
			PageCount:       ld.intField(n, "PageCount"),
		})
	}
	ld.stats.Books = len(ld.lib.Books())
}

func (ld *load) loans(doc *xmldoc.Document) {
	for _, n := range descendants(doc, "Loan") {
		book, bookOK := ld.lib.BookByID(ld.intField(n, "BookId"))
		borrower, borrowerOK := ld.lib.BorrowerByID(ld.intField(n, "BorrowerId"))
		if !bookOK || !borrowerOK {
			ld.stats.DroppedLoans++
			logging.Debug("dropping loan with unresolvable references",
				"loan_id", n.ChildText("Id"),
				"book_id", n.ChildText("BookId"),
				"borrower_id", n.ChildText("BorrowerId"))
			continue
		}

		loanDate := ld.dateField(n, "LoanDate")
		dueDate, ok := parseDate(n.ChildText("DueDate"))
		if !ok {
			ld.stats.DefaultedFields++
			dueDate = loanDate.AddDate(0, 0, DefaultLoanDays)
		}

		// The stored duration is recomputed as whole days between the two
		// independently parsed dates, not taken from a single field.
		days := int(dueDate.Sub(loanDate) / (24 * time.Hour))

		ld.lib.AddLoan(catalog.NewLoan(ld.intField(n, "Id"), book, borrower, loanDate, days))
	}
	ld.stats.Loans = len(ld.lib.Loans())
}

// intField reads a child element as an integer, falling back to 0.
func (ld *load) intField(n *xmldoc.Node, name string) int {
	v, ok := parseInt(n.ChildText(name))
	if !ok {
		ld.stats.DefaultedFields++
	}
	return v
}

// dateField reads a child element as a date, falling back to the load's
// start time.
func (ld *load) dateField(n *xmldoc.Node, name string) time.Time {
	v, ok := parseDate(n.ChildText(name))
	if !ok {
		ld.stats.DefaultedFields++
		return ld.now
	}
	return v
}

func descendants(doc *xmldoc.Document, name string) []*xmldoc.Node {
	nodes, err := doc.Descendants(name)
	if err != nil {
		return nil
	}
	return nodes
}
