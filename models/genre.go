package models

// Genre classifies titles by kind of content: comedy, fantasy, etc.
type Genre struct {
	ID   uint   `json:"-" gorm:"primarykey"`
	Name string `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Slug string `json:"slug" gorm:"size:100;uniqueIndex;not null"`
}
