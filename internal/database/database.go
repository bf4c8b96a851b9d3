package database

import (
	"fleet-management-api/internal/models"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// allModels is the full schema, migrated in dependency order.
var allModels = []any{
	&models.Company{},
	&models.User{},
	&models.Employee{},
	&models.Driver{},
	&models.FleetVehicle{},
	&models.Project{},
	&models.Task{},
	&models.FleetTask{},
	&models.FleetTaskPassenger{},
	&models.FleetTaskMaterial{},
	&models.FleetTaskTool{},
	&models.FleetAlert{},
}

// InitDB opens the SQLite database file and runs migrations.
// Using glebarez/sqlite which is a pure Go implementation (no CGO required).
// GORM's own logger stays silent; request logging goes through zap instead.
func InitDB(path string) {
	var err error
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		zap.L().Fatal("failed to connect to database", zap.Error(err))
	}

	if err := DB.AutoMigrate(allModels...); err != nil {
		zap.L().Fatal("failed to migrate database", zap.Error(err))
	}

	zap.L().Info("database connected and migrated", zap.String("path", path))
}

// GetDB returns the database connection
func GetDB() *gorm.DB {
	return DB
}
