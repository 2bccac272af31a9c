package models

// Category classifies titles at the top level: films, books, etc.
// The slug is the public handle, lookups and deletes go through it.
type Category struct {
	ID   uint   `json:"-" gorm:"primarykey"`
	Name string `json:"name" gorm:"size:128;uniqueIndex;not null"`
	Slug string `json:"slug" gorm:"size:128;uniqueIndex;not null"`
}
