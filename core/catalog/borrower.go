package catalog

import (
	"fmt"
	"strconv"
)

// Borrower is a registered library member who can appear on loans.
type Borrower struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (b *Borrower) String() string {
	return fmt.Sprintf("%s (%s)", b.Name, b.Email)
}

// Fields returns the borrower's display fields in declaration order.
func (b *Borrower) Fields() []Field {
	return []Field{
		{Name: "Id", Value: strconv.Itoa(b.ID)},
		{Name: "Name", Value: b.Name},
		{Name: "Email", Value: b.Email},
		{Name: "Phone", Value: b.Phone},
	}
}
