package model

// Paragraph is one ordered segment of a post's extracted text.
// Seq is assigned once at upload time and is unique within a post;
// paragraphs are never edited afterwards.
type Paragraph struct {
	ID     string `gorm:"primaryKey;uuid;not null"`
	PostID string `gorm:"uuid;not null;uniqueIndex:idx_paragraphs_post_seq"`
	Seq    int    `gorm:"not null;uniqueIndex:idx_paragraphs_post_seq"`
	Text   string `gorm:"not null"`
}
