package models

import "time"

// Comment lets users discuss a review.
type Comment struct {
	ID       uint      `json:"id" gorm:"primarykey"`
	ReviewID uint      `json:"-" gorm:"not null;index"`
	AuthorID uint      `json:"-" gorm:"not null"`
	Author   User      `json:"-" gorm:"foreignKey:AuthorID"`
	Text     string    `json:"text" gorm:"type:text;not null"`
	PubDate  time.Time `json:"pub_date" gorm:"autoCreateTime;index"`
}
