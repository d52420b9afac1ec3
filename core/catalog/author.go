package catalog

import (
	"fmt"
	"strconv"
	"time"
)

// Author is a book author. Authors own nothing; books reference them by id.
type Author struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Nationality string    `json:"nationality"`
	BirthDate   time.Time `json:"birth_date"`
}

func (a *Author) String() string {
	return fmt.Sprintf("%s (%s)", a.Name, a.Nationality)
}

// Fields returns the author's display fields in declaration order.
func (a *Author) Fields() []Field {
	return []Field{
		{Name: "Id", Value: strconv.Itoa(a.ID)},
		{Name: "Name", Value: a.Name},
		{Name: "Nationality", Value: a.Nationality},
		{Name: "BirthDate", Value: a.BirthDate.Format(DateLayout)},
	}
}
