package postgres

import (
	"time"

	"alcyxob/gym-api/internal/domain"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connection pool defaults
const (
	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 30 * time.Minute
)

// ConnectDB establishes a connection pool to PostgreSQL using the provided DSN.
// It returns the gorm.DB handle repositories are built on. TranslateError maps
// driver specific failures (unique violations in particular) onto GORM's
// portable sentinel errors so callers can branch on gorm.ErrDuplicatedKey.
func ConnectDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	// Tune the underlying sql.DB pool; gorm.Open already verified the
	// connection with a ping.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	return db, nil
}

// DisconnectDB gracefully closes the underlying connection pool.
func DisconnectDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Migrate creates or updates the schema for every domain model,
// including the unique indexes the upsert semantics rely on.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Trainer{},
		&domain.SessionSchedule{},
		&domain.SessionAttendance{},
		&domain.DietPlan{},
		&domain.ExercisePlan{},
	)
}
