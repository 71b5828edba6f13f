package model

import "time"

// Idea is a user annotation on a quoted excerpt of a paragraph.
// The referenced paragraph must belong to the same post as the idea.
type Idea struct {
	ID          string `gorm:"primaryKey;uuid;not null"`
	PostID      string `gorm:"uuid;not null;index"`
	ParagraphID string `gorm:"uuid;not null"`
	Quote       string `gorm:"not null"` // the text highlighted by the user
	Note        string `gorm:"not null"` // the user's commentary
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Paragraph Paragraph `gorm:"foreignKey:ParagraphID;constraint:OnDelete:CASCADE"`
}
