package model

import "time"

// Underline marks a quoted excerpt of a paragraph without commentary.
type Underline struct {
	ID          string `gorm:"primaryKey;uuid;not null"`
	PostID      string `gorm:"uuid;not null;index"`
	ParagraphID string `gorm:"uuid;not null"`
	Quote       string `gorm:"not null"`
	CreatedAt   time.Time

	Paragraph Paragraph `gorm:"foreignKey:ParagraphID;constraint:OnDelete:CASCADE"`
}
