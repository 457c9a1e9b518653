package entity

// FixtureAuthors and FixtureBooks seed the volatile in-memory catalog.
func FixtureAuthors() []Author {
	return []Author{
		{ID: 1, FirstName: "John", LastName: "Doe", PublishedBookIDs: []int64{1}},
		{ID: 2, FirstName: "Jane", LastName: "Doe", PublishedBookIDs: []int64{2}},
	}
}

func FixtureBooks() []Book {
	authors := FixtureAuthors()
	return []Book{
		{ID: 1, Title: "Book1", PublishedYear: 2000, Author: authors[0].Ref()},
		{ID: 2, Title: "Book2", PublishedYear: 2001, Author: authors[1].Ref()},
	}
}
