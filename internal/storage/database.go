package storage

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/game"
)

// DefaultDSN is a shared in-memory SQLite database: battles disappear with
// the process.
const DefaultDSN = "file:battles?mode=memory&cache=shared"

// OpenDB opens the SQLite database at dsn and migrates the battle schema.
func OpenDB(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer; one connection also keeps a shared
	// in-memory database alive for as long as the pool is open.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&game.Battle{}); err != nil {
		return nil, err
	}
	return db, nil
}
