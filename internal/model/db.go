package model

import "gorm.io/gorm"

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Post{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&Paragraph{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&Idea{}); err != nil {
		return err
	}

	return db.AutoMigrate(&Underline{})
}
