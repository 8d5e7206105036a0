package data

import (
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/agent-tribunal/casedocket/src/CDApi/types"
)

func MustMySQL(dsn string) *gorm.DB {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	return db
}

// Migrate creates or updates the cases and agent_keys tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&types.Case{}, &types.AgentKey{})
}
