package log

type Action = string

const (
	CreateAuthor Action = "CreateAuthor"
	GetAuthor    Action = "GetAuthor"
	ListAuthors  Action = "ListAuthors"
	DeleteAuthor Action = "DeleteAuthor"
	CreateBook   Action = "CreateBook"
	GetBook      Action = "GetBook"
	ListBooks    Action = "ListBooks"
	DeleteBook   Action = "DeleteBook"
)
