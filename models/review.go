package models

import "time"

// Review is a user's scored opinion on a title. The composite unique
// index is the authoritative guard for one review per (title, author);
// the service-level check is only a fast path.
type Review struct {
	ID       uint      `json:"id" gorm:"primarykey"`
	TitleID  uint      `json:"-" gorm:"not null;uniqueIndex:idx_reviews_title_author"`
	AuthorID uint      `json:"-" gorm:"not null;uniqueIndex:idx_reviews_title_author"`
	Author   User      `json:"-" gorm:"foreignKey:AuthorID"`
	Text     string    `json:"text" gorm:"type:text;not null"`
	Score    int       `json:"score" gorm:"not null"`
	PubDate  time.Time `json:"pub_date" gorm:"autoCreateTime;index"`
}
