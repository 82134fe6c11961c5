package pcdb

import (
	"fmt"
	"time"

	"github.com/apex/log"
	"github.com/led-dino/playacamp/pkg/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SqliteInMemoryDSN opens a private in-memory database. Callers must limit the
// pool to a single connection or each connection sees its own empty database.
const SqliteInMemoryDSN = ":memory:"

func MakeDSN(c config.Configer) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true",
		c.GetKey(config.DBUsernameKey),
		c.GetKey(config.DBPasswordKey),
		c.GetKey(config.DBHostKey),
		c.GetKeyWithDefault(config.DBPortKey, "3306"),
		c.GetKey(config.DBDatabaseKey))
}

func dialectorFor(c config.Configer) gorm.Dialector {
	switch c.GetKeyWithDefault(config.DBConnectionKey, "mysql") {
	case "sqlite":
		return sqlite.Open(c.GetKeyWithDefault(config.SqlitePathKey, "playacamp.db") + "?_foreign_keys=on")
	default:
		return mysql.Open(MakeDSN(c))
	}
}

const maxDBRetries = 5

// MustConnectToDB will attempt to connect to the database maxDBRetries times. If it isn't successful
// after that number of retries then it will call log.Fatalf(), which will cause the server to exit.
// Between retry attempts it will sleep for 3 seconds.
func MustConnectToDB(c config.Configer) *gorm.DB {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	for retryCount := 1; ; retryCount++ {
		db, err := gorm.Open(dialectorFor(c), gormConfig)
		switch {
		case err == nil:
			if c.GetKey(config.DBConnectionKey) == "sqlite" {
				limitToOneConnection(db)
			}
			return db
		case retryCount >= maxDBRetries:
			log.Fatalf("Failed to open %s db: %s", c.GetKeyWithDefault(config.DBConnectionKey, "mysql"), err)
		default:
			log.Warnf("Connecting to db failed (attempt %d of %d): %s", retryCount, maxDBRetries, err)
			time.Sleep(3 * time.Second)
		}
	}
}

// OpenSqliteInMemory returns a migrated, empty in-memory database.
func OpenSqliteInMemory() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(SqliteInMemoryDSN+"?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	limitToOneConnection(db)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// sqlite serializes writers anyway; a single connection also keeps an
// in-memory database alive for the life of the pool.
func limitToOneConnection(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)
}
