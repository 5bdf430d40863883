package repositories

import (
	"time"

	"yatube/app/logger"
	"yatube/app/models"

	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var ErrUnknownDriver = errors.New("unknown sql driver")

// OpenGorm connects to dsn with the named driver ("sqlite", "mysql" or
// "postgres") and migrates the schema.
func OpenGorm(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite", "sqlite3", "":
		dialector = sqlite.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	case "postgres", "postgresql":
		dialector = postgres.Open(dsn)
	default:
		return nil, errors.Wrap(ErrUnknownDriver, driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		// Follow and Post rows are cleaned up by the services, not by the schema.
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger: gormlogger.New(logger.Log, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open %s database", driver)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the tables of every model.
func Migrate(db *gorm.DB) error {
	for _, model := range []interface{}{
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	} {
		if err := db.AutoMigrate(model); err != nil {
			return errors.Wrapf(err, "failed to migrate %T", model)
		}
	}
	return nil
}

// NewGormStore wires every repository to db. Closing the store closes the
// connection pool.
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Users:    &GormUserRepository{db: db},
		Groups:   &GormGroupRepository{db: db},
		Posts:    &GormPostRepository{db: db},
		Comments: &GormCommentRepository{db: db},
		Follows:  &GormFollowRepository{db: db},
		closer: func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}

// gormErr maps gorm's sentinel errors onto the repository ones.
func gormErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}

// deleteByID deletes one row of model, ErrNotFound if nothing matched.
func deleteByID(db *gorm.DB, model interface{}, id int) error {
	res := db.Delete(model, id)
	if res.Error != nil {
		return gormErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
