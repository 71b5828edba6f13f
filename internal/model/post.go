package model

import (
	"encoding/json"
	"time"
)

// Post is a blog post created from a photographed book page.
// The extracted text lives in the owned Paragraph rows; RawText keeps the
// unsplit OCR output compressed with the algorithm named in Compression.
type Post struct {
	ID          string `gorm:"primaryKey;uuid;not null"`
	Title       string `gorm:"size:255;not null"`
	Author      string `gorm:"size:255;not null;default:Anonymous"`
	ImageRef    string `gorm:"size:500"` // storage reference of the uploaded page image
	ImageURL    string `gorm:"size:500"` // external URL when the image lives outside local storage
	RawText     []byte
	Compression string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Content    []Paragraph `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Ideas      []Idea      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Underlines []Underline `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

// PublishDate formats the creation time the way the frontend displays it.
func (p *Post) PublishDate() string {
	return p.CreatedAt.Format("January 2, 2006")
}

func (p *Post) MarshalBinary() ([]byte, error) {
	return json.Marshal(p)
}
