package main

import (
	"fmt"
	"log"

	"github.com/glebarez/sqlite"
	"github.com/notehq/note-api/internal/models"
	"gorm.io/gorm"
)

func main() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		log.Fatal(err)
	}

	// Auto-migrate to see what GORM creates
	err = db.AutoMigrate(
		&models.User{},
		&models.Document{},
		&models.Collaborator{},
	)
	if err != nil {
		log.Fatal(err)
	}

	// Get the schema
	var tables []string
	db.Raw("SELECT name FROM sqlite_master WHERE type='table'").Scan(&tables)

	for _, table := range tables {
		fmt.Printf("== %s ==\n", table)
		var ddl string
		db.Raw("SELECT sql FROM sqlite_master WHERE type='table' AND name = ?", table).Scan(&ddl)
		fmt.Println(ddl)

		var indexes []string
		db.Raw("SELECT sql FROM sqlite_master WHERE type='index' AND tbl_name = ? AND sql IS NOT NULL", table).Scan(&indexes)
		for _, idx := range indexes {
			fmt.Println(idx)
		}
		fmt.Println()
	}
}
