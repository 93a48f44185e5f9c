// Package dbtest opens a throwaway in-memory sqlite store for tests.
package dbtest

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"videotube.com/cmd/dal/db"
	"videotube.com/cmd/model"
	"videotube.com/pkg/database"
)

// Setup 为当前测试初始化db.DB
func Setup(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	require.NoError(t, db.Init(database.Options{Driver: database.DriverSqlite, DSN: dsn, LogLevel: logger.Silent}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
}

// User 直接写入一个用户
func User(t *testing.T, name string) *model.User {
	t.Helper()
	u := &model.User{
		ID:       uuid.NewString(),
		Username: name,
		Email:    name + "@example.com",
		FullName: "User " + name,
		Avatar:   "http://storage.test/videotube/avatars/" + name + ".png",
		Password: "not-a-real-hash",
	}
	require.NoError(t, db.DB.Create(u).Error)
	return u
}

// Video 直接写入一个视频
func Video(t *testing.T, owner *model.User, title string, published bool) *model.Video {
	t.Helper()
	v := &model.Video{
		ID:          uuid.NewString(),
		OwnerID:     owner.ID,
		Title:       title,
		Description: "about " + title,
		VideoFile:   "http://storage.test/videotube/videos/" + title + ".mp4",
		Thumbnail:   "http://storage.test/videotube/thumbnails/" + title + ".png",
		IsPublished: published,
	}
	require.NoError(t, db.DB.Create(v).Error)
	return v
}

// Count 统计满足条件的行数
func Count(t *testing.T, m interface{}, cond string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.DB.Model(m).Where(cond, args...).Count(&n).Error)
	return n
}
