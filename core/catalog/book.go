package catalog

import (
	"fmt"
	"strconv"
	"time"
)

// Book is a catalog book. The Author reference is non-owning and must point
// at an author already present in the store; the loader drops book records
// whose author cannot be resolved.
type Book struct {
	ID              int       `json:"id"`
	Title           string    `json:"title"`
	Author          *Author   `json:"author"`
	PublicationDate time.Time `json:"publication_date"`
	ISBN            string    `json:"isbn"`
	Category        string    `json:"category"`
	PageCount       int       `json:"page_count"`
}

func (b *Book) String() string {
	return fmt.Sprintf("%s by %s (%s)", b.Title, b.Author.Name, b.Category)
}

// Fields returns the book's display fields in declaration order. The author
// is rendered through its own display form.
func (b *Book) Fields() []Field {
	return []Field{
		{Name: "Id", Value: strconv.Itoa(b.ID)},
		{Name: "Title", Value: b.Title},
		{Name: "Author", Value: b.Author.String()},
		{Name: "PublicationDate", Value: b.PublicationDate.Format(DateLayout)},
		{Name: "ISBN", Value: b.ISBN},
		{Name: "Category", Value: b.Category},
		{Name: "PageCount", Value: strconv.Itoa(b.PageCount)},
	}
}
