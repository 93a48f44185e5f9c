package db

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"videotube.com/cmd/model"
	"videotube.com/pkg/database"
)

var DB *gorm.DB

// Init init DB
func Init(opts database.Options) error {
	var err error
	DB, err = database.Open(opts)
	if err != nil {
		return err
	}
	return Migrate(context.Background(), DB)
}

// Migrate 建表及索引，唯一索引保证点赞与订阅关系的唯一性
func Migrate(ctx context.Context, db *gorm.DB) error {
	err := db.WithContext(ctx).AutoMigrate(
		&model.User{},
		&model.Video{},
		&model.Comment{},
		&model.Tweet{},
		&model.Like{},
		&model.Subscription{},
		&model.WatchHistory{},
	)
	return errors.WithMessage(err, "dao.Migrate failed")
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
