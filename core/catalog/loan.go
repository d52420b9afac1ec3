package catalog

import (
	"fmt"
	"strconv"
	"time"
)

// Loan records that a borrower has a book out. Book and Borrower are
// non-owning references to entities already present in the store. ReturnDate
// is nil while the loan is open.
type Loan struct {
	ID         int        `json:"id"`
	Book       *Book      `json:"book"`
	Borrower   *Borrower  `json:"borrower"`
	LoanDate   time.Time  `json:"loan_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
}

// NewLoan builds a loan whose due date is derived as loanDate plus
// durationDays whole days.
func NewLoan(id int, book *Book, borrower *Borrower, loanDate time.Time, durationDays int) *Loan {
	return &Loan{
		ID:       id,
		Book:     book,
		Borrower: borrower,
		LoanDate: loanDate,
		DueDate:  loanDate.AddDate(0, 0, durationDays),
	}
}

// Overdue reports whether the loan is overdue at the given moment: no return
// has been recorded and the due date is strictly in the past. Computed on
// read, never stored.
func (l *Loan) Overdue(now time.Time) bool {
	return l.ReturnDate == nil && l.DueDate.Before(now)
}

func (l *Loan) String() string {
	return fmt.Sprintf("%s borrowed by %s on %s", l.Book.Title, l.Borrower.Name, l.LoanDate.Format(DateLayout))
}

// Fields returns the loan's display fields in declaration order. Book and
// borrower are rendered through their own display forms, and the derived
// overdue flag is evaluated at call time.
func (l *Loan) Fields() []Field {
	returned := ""
	if l.ReturnDate != nil {
		returned = l.ReturnDate.Format(DateLayout)
	}
	return []Field{
		{Name: "Id", Value: strconv.Itoa(l.ID)},
		{Name: "Book", Value: l.Book.String()},
		{Name: "Borrower", Value: l.Borrower.String()},
		{Name: "LoanDate", Value: l.LoanDate.Format(DateLayout)},
		{Name: "DueDate", Value: l.DueDate.Format(DateLayout)},
		{Name: "ReturnDate", Value: returned},
		{Name: "IsOverdue", Value: strconv.FormatBool(l.Overdue(time.Now()))},
	}
}
