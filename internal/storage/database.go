package storage

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/idl3o/tasern-3-sub001/internal/game"
	"github.com/idl3o/tasern-3-sub001/internal/logging"
)

// OpenAndMigrate opens the sqlite database, keeps the schema current via
// AutoMigrate and seeds the card template rows from config.
func OpenAndMigrate(dataSourceName string, cardsFromConfig []game.Card) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&BattleRecord{}, &CardTemplate{}, &PlayerProfile{}); err != nil {
		return nil, err
	}
	seedCardTemplates(db, cardsFromConfig)
	return db, nil
}

// seedCardTemplates inserts a row per configured card name. Stats live in
// the config, so existing rows never need updating; only names missing from
// the table are added.
func seedCardTemplates(db *gorm.DB, cards []game.Card) {
	for _, c := range cards {
		var count int64
		db.Model(&CardTemplate{}).Where("name = ?", c.Name).Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&CardTemplate{Name: c.Name}).Error; err != nil {
			logging.Error("failed to seed card template", err, logging.Fields{"name": c.Name})
		}
	}
}
