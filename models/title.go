package models

// MaxYearOffset caps the title year at current year + offset,
// leaving room for announced but unreleased works.
const MaxYearOffset = 10

type Title struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	Name        string    `json:"name" gorm:"size:128;index;not null"`
	Year        *int      `json:"year" gorm:"index"`
	Description string    `json:"description" gorm:"type:text"`
	CategoryID  *uint     `json:"-" gorm:"index"`
	Category    *Category `json:"category" gorm:"foreignKey:CategoryID"`
	Genre       []Genre   `json:"genre" gorm:"many2many:title_genres;"`

	// Rating is the arithmetic mean of review scores, filled by the
	// repository from an aggregate subquery; null when no reviews exist.
	Rating *float64 `json:"rating" gorm:"->;-:migration"`
}
