package catalog

import "sort"

// BookGroup is one partition of the book collection under a grouping key.
type BookGroup struct {
	Key   string
	Books []*Book
}

// BooksByAuthor partitions all books by author name. Groups are ordered
// lexicographically by key; books keep insertion order within a group.
func BooksByAuthor(l *Library) []BookGroup {
	return groupBooks(l.Books(), func(b *Book) string { return b.Author.Name })
}

// BooksByCategory partitions all books by category. Groups are ordered
// lexicographically by key; books keep insertion order within a group.
func BooksByCategory(l *Library) []BookGroup {
	return groupBooks(l.Books(), func(b *Book) string { return b.Category })
}

// ActiveBorrowers returns the borrowers that hold at least one loan, in
// borrower insertion order.
func ActiveBorrowers(l *Library) []*Borrower {
	var out []*Borrower
	for _, b := range l.Borrowers() {
		if len(l.LoansByBorrower(b)) > 0 {
			out = append(out, b)
		}
	}
	return out
}

func groupBooks(books []*Book, key func(*Book) string) []BookGroup {
	byKey := make(map[string][]*Book)
	var keys []string
	for _, b := range books {
		k := key(b)
		if _, ok := byKey[k]; !ok {
			keys = append(keys, k)
		}
		byKey[k] = append(byKey[k], b)
	}
	sort.Strings(keys)

	groups := make([]BookGroup, 0, len(keys))
	for _, k := range keys {
		groups = append(groups, BookGroup{Key: k, Books: byKey[k]})
	}
	return groups
}
