package catalog

import (
	"slices"
	"strings"
	"time"
)

// Library is the in-memory store of the four entity collections. Each
// collection preserves insertion order and is keyed by the entity's integer
// id; inserting a duplicate id is a no-op (first writer wins), which makes
// re-running the loader idempotent.
type Library struct {
	authors   []*Author
	books     []*Book
	borrowers []*Borrower
	loans     []*Loan

	authorByID   map[int]*Author
	bookByID     map[int]*Book
	borrowerByID map[int]*Borrower
	loanByID     map[int]*Loan
}

// New returns an empty library.
func New() *Library {
	return &Library{
		authorByID:   make(map[int]*Author),
		bookByID:     make(map[int]*Book),
		borrowerByID: make(map[int]*Borrower),
		loanByID:     make(map[int]*Loan),
	}
}

// AddAuthor inserts the author unless an author with the same id exists.
func (l *Library) AddAuthor(a *Author) {
	if _, ok := l.authorByID[a.ID]; ok {
		return
	}
	l.authorByID[a.ID] = a
	l.authors = append(l.authors, a)
}

// AddBook inserts the book unless a book with the same id exists. The store
// does not re-validate the author reference; the loader has already resolved
// it against the author collection.
func (l *Library) AddBook(b *Book) {
	if _, ok := l.bookByID[b.ID]; ok {
		return
	}
	l.bookByID[b.ID] = b
	l.books = append(l.books, b)
}

// AddBorrower inserts the borrower unless a borrower with the same id exists.
func (l *Library) AddBorrower(b *Borrower) {
	if _, ok := l.borrowerByID[b.ID]; ok {
		return
	}
	l.borrowerByID[b.ID] = b
	l.borrowers = append(l.borrowers, b)
}

// AddLoan inserts the loan unless a loan with the same id exists.
func (l *Library) AddLoan(ln *Loan) {
	if _, ok := l.loanByID[ln.ID]; ok {
		return
	}
	l.loanByID[ln.ID] = ln
	l.loans = append(l.loans, ln)
}

// AuthorByID looks up an author by id.
func (l *Library) AuthorByID(id int) (*Author, bool) {
	a, ok := l.authorByID[id]
	return a, ok
}

// BookByID looks up a book by id.
func (l *Library) BookByID(id int) (*Book, bool) {
	b, ok := l.bookByID[id]
	return b, ok
}

// BorrowerByID looks up a borrower by id.
func (l *Library) BorrowerByID(id int) (*Borrower, bool) {
	b, ok := l.borrowerByID[id]
	return b, ok
}

// LoanByID looks up a loan by id.
func (l *Library) LoanByID(id int) (*Loan, bool) {
	ln, ok := l.loanByID[id]
	return ln, ok
}

// Authors returns all authors in insertion order.
func (l *Library) Authors() []*Author {
	return slices.Clone(l.authors)
}

// Books returns all books in insertion order.
func (l *Library) Books() []*Book {
	return slices.Clone(l.books)
}

// Borrowers returns all borrowers in insertion order.
func (l *Library) Borrowers() []*Borrower {
	return slices.Clone(l.borrowers)
}

// Loans returns all loans in insertion order.
func (l *Library) Loans() []*Loan {
	return slices.Clone(l.loans)
}

// AvailableBooks returns the books referenced by no loan, in insertion order.
// A loan keeps its book unavailable even after the return date is set; loans
// are never removed from the store.
func (l *Library) AvailableBooks() []*Book {
	var out []*Book
	for _, b := range l.books {
		if !l.hasLoanFor(b) {
			out = append(out, b)
		}
	}
	return out
}

// BorrowedBooks returns the books referenced by at least one loan, in
// insertion order. Together with AvailableBooks this partitions Books.
func (l *Library) BorrowedBooks() []*Book {
	var out []*Book
	for _, b := range l.books {
		if l.hasLoanFor(b) {
			out = append(out, b)
		}
	}
	return out
}

// OverdueBooks returns the book of every loan that is overdue at the given
// moment, in loan insertion order. A book with several overdue loans appears
// once per qualifying loan.
func (l *Library) OverdueBooks(now time.Time) []*Book {
	var out []*Book
	for _, ln := range l.loans {
		if ln.Overdue(now) {
			out = append(out, ln.Book)
		}
	}
	return out
}

// SearchBooks returns the books whose title, author name, or category
// contains term, case-insensitively. An empty term matches every book.
func (l *Library) SearchBooks(term string) []*Book {
	term = strings.ToLower(term)
	var out []*Book
	for _, b := range l.books {
		if strings.Contains(strings.ToLower(b.Title), term) ||
			strings.Contains(strings.ToLower(b.Author.Name), term) ||
			strings.Contains(strings.ToLower(b.Category), term) {
			out = append(out, b)
		}
	}
	return out
}

// LoansByBorrower returns every loan held by the given borrower, in insertion
// order. Borrowers are matched by id.
func (l *Library) LoansByBorrower(b *Borrower) []*Loan {
	var out []*Loan
	for _, ln := range l.loans {
		if ln.Borrower.ID == b.ID {
			out = append(out, ln)
		}
	}
	return out
}

func (l *Library) hasLoanFor(b *Book) bool {
	for _, ln := range l.loans {
		if ln.Book.ID == b.ID {
			return true
		}
	}
	return false
}
