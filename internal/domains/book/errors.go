package book

import "errors"

var (
	ErrBookNotFound   = errors.New("book not found")
	ErrBookTitleTaken = errors.New("book title already exists")
)
