package entity

type Book struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	PublishedYear int     `json:"publishedYear"`
	Author        *Author `json:"author,omitempty"`
}

func (b *Book) GetID() int64 {
	return b.ID
}

func (b *Book) SetID(id int64) {
	b.ID = id
}

// AuthorID returns the referenced author id, or UnsetID when the book has no author.
func (b Book) AuthorID() int64 {
	if b.Author == nil {
		return UnsetID
	}
	return b.Author.ID
}
