package entity

// UnsetID marks an entity that has not been stored yet.
const UnsetID int64 = 0

type Author struct {
	ID               int64   `json:"id"`
	FirstName        string  `json:"firstName"`
	LastName         string  `json:"lastName"`
	PublishedBookIDs []int64 `json:"publishedBookIds"`
}

func (a *Author) GetID() int64 {
	return a.ID
}

func (a *Author) SetID(id int64) {
	a.ID = id
}

// Ref returns a copy of the author suitable for embedding into a book record.
func (a Author) Ref() *Author {
	return &Author{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
	}
}
