package models

import "gorm.io/gorm"

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Department{},
		&Division{},
		&Rank{},
		&UnitStatus{},
		&Officer{},
		&CombinedUnit{},
		&ChatCreator{},
		&OfficerChatMessage{},
	)
}
