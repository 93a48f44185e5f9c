package db

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"videotube.com/cmd/model"
	"videotube.com/pkg/constants"
	"videotube.com/pkg/database"
	"videotube.com/pkg/pipeline"
)

var base = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func setupDB(t *testing.T) context.Context {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	require.NoError(t, Init(database.Options{Driver: database.DriverSqlite, DSN: dsn, LogLevel: logger.Silent}))
	t.Cleanup(func() {
		if sqlDB, err := DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return context.Background()
}

func mustUser(t *testing.T, ctx context.Context, name string) *model.User {
	t.Helper()
	u := &model.User{
		ID:       uuid.NewString(),
		Username: name,
		Email:    name + "@example.com",
		FullName: "User " + name,
		Avatar:   "http://cdn/avatars/" + name,
		Password: "secret-hash",
	}
	require.NoError(t, CreateUser(ctx, u))
	return u
}

func mustVideo(t *testing.T, ctx context.Context, owner *model.User, title string, published bool, at time.Time) *model.Video {
	t.Helper()
	v := &model.Video{
		ID:          uuid.NewString(),
		OwnerID:     owner.ID,
		Title:       title,
		Description: "about " + title,
		VideoFile:   "http://cdn/videos/" + title,
		Thumbnail:   "http://cdn/thumbnails/" + title,
		Duration:    12.5,
		IsPublished: published,
		CreatedAt:   at,
		UpdatedAt:   at,
	}
	require.NoError(t, CreateVideo(ctx, v))
	return v
}

func mustComment(t *testing.T, ctx context.Context, owner *model.User, video *model.Video, content string, at time.Time) *model.Comment {
	t.Helper()
	c := &model.Comment{ID: uuid.NewString(), VideoID: video.ID, OwnerID: owner.ID, Content: content, CreatedAt: at, UpdatedAt: at}
	require.NoError(t, CreateComment(ctx, c))
	return c
}

func countRows(t *testing.T, m interface{}, cond string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, DB.Model(m).Where(cond, args...).Count(&n).Error)
	return n
}

func TestCreateUserDuplicate(t *testing.T) {
	ctx := setupDB(t)
	alice := mustUser(t, ctx, "alice")

	err := CreateUser(ctx, &model.User{ID: uuid.NewString(), Username: "alice", Email: "other@example.com", FullName: "x", Avatar: "a", Password: "p"})
	assert.ErrorIs(t, err, ErrUserExists)

	exists, err := UserExists(ctx, "ALICE", "nobody@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	got, err := GetUserByLogin(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, alice.ID, got.ID)

	missing, err := GetUserByID(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestToggleLikeTwiceIsAbsent(t *testing.T) {
	ctx := setupDB(t)
	a := mustUser(t, ctx, "alice")
	b := mustUser(t, ctx, "bob")
	v := mustVideo(t, ctx, a, "v1", true, base)

	liked, err := ToggleLike(ctx, constants.TargetVideo, v.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = ToggleLike(ctx, constants.TargetVideo, v.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	ok, err := IsLiked(ctx, constants.TargetVideo, v.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(0), countRows(t, &model.Like{}, "target_id = ?", v.ID))
}

func TestLikeUniqueIndex(t *testing.T) {
	ctx := setupDB(t)
	a := mustUser(t, ctx, "alice")
	v := mustVideo(t, ctx, a, "v1", true, base)

	first := &model.Like{ID: uuid.NewString(), TargetType: constants.TargetVideo, TargetID: v.ID, LikedBy: a.ID}
	require.NoError(t, DB.Create(first).Error)

	second := &model.Like{ID: uuid.NewString(), TargetType: constants.TargetVideo, TargetID: v.ID, LikedBy: a.ID}
	err := DB.Create(second).Error
	require.Error(t, err)
	assert.True(t, isDuplicate(err))
}

// 在插入语句执行前抢先写入同一条点赞，模拟两个请求同时点赞
func TestToggleLikeConcurrentInsert(t *testing.T) {
	ctx := setupDB(t)
	a := mustUser(t, ctx, "alice")
	b := mustUser(t, ctx, "bob")
	v := mustVideo(t, ctx, a, "v1", true, base)

	fired := false
	require.NoError(t, DB.Callback().Raw().Before("gorm:raw").Register("test:racing_like", func(tx *gorm.DB) {
		if fired || !strings.HasPrefix(tx.Statement.SQL.String(), "INSERT INTO likes") {
			return
		}
		fired = true
		other := &model.Like{ID: uuid.NewString(), TargetType: constants.TargetVideo, TargetID: v.ID, LikedBy: b.ID}
		require.NoError(t, DB.Create(other).Error)
	}))

	liked, err := ToggleLike(ctx, constants.TargetVideo, v.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, fired)
	assert.True(t, liked)
	assert.Equal(t, int64(1), countRows(t, &model.Like{}, "target_id = ?", v.ID))
}

func TestToggleLikeTargetDeleted(t *testing.T) {
	ctx := setupDB(t)
	a := mustUser(t, ctx, "alice")
	b := mustUser(t, ctx, "bob")
	v := mustVideo(t, ctx, a, "v1", true, base)
	cm := mustComment(t, ctx, a, v, "hello", base)

	t.Run("unknown target", func(t *testing.T) {
		_, err := ToggleLike(ctx, constants.TargetTweet, uuid.NewString(), b.ID)
		assert.ErrorIs(t, err, ErrLikeTargetMissing)
	})

	t.Run("target removed between check and insert", func(t *testing.T) {
		fired := false
		require.NoError(t, DB.Callback().Raw().Before("gorm:raw").Register("test:cascade_delete", func(tx *gorm.DB) {
			if fired || !strings.HasPrefix(tx.Statement.SQL.String(), "INSERT INTO likes") {
				return
			}
			fired = true
			require.NoError(t, DeleteComment(ctx, cm.ID))
		}))

		_, err := ToggleLike(ctx, constants.TargetComment, cm.ID, b.ID)
		assert.True(t, fired)
		assert.ErrorIs(t, err, ErrLikeTargetMissing)
		assert.Equal(t, int64(0), countRows(t, &model.Like{}, "target_id = ?", cm.ID))
	})

	t.Run("unsupported target type", func(t *testing.T) {
		_, err := ToggleLike(ctx, "playlist", v.ID, b.ID)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrLikeTargetMissing)
	})
}

func TestToggleSubscriptionConcurrentInsert(t *testing.T) {
	ctx := setupDB(t)
	a := mustUser(t, ctx, "alice")
	b := mustUser(t, ctx, "bob")

	fired := false
	require.NoError(t, DB.Callback().Create().Before("gorm:create").Register("test:racing_subscription", func(tx *gorm.DB) {
		if fired || tx.Statement.Table != "subscriptions" {
			return
		}
		fired = true
		require.NoError(t, DB.Exec("INSERT INTO subscriptions (id, channel_id, subscriber_id, created_at) VALUES (?, ?, ?, ?)",
			uuid.NewString(), a.ID, b.ID, time.Now()).Error)
	}))

	on, err := ToggleSubscription(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, fired)
	assert.True(t, on)
	assert.Equal(t, int64(1), countRows(t, &model.Subscription{}, "channel_id = ?", a.ID))
}

func TestToggleSubscription(t *testing.T) {
	ctx := setupDB(t)
	a := mustUser(t, ctx, "alice")
	b := mustUser(t, ctx, "bob")

	on, err := ToggleSubscription(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, on)

	subs, total, err := ListSubscribers(ctx, a.ID, pipeline.Page{Number: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, subs, 1)
	assert.Equal(t, "bob", subs[0].Username)

	channels, total, err := ListSubscribedChannels(ctx, b.ID, pipeline.Page{Number: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, channels, 1)
	assert.Equal(t, a.ID, channels[0].ID)
	assert.Equal(t, int64(1), channels[0].SubscribersCount)

	on, err = ToggleSubscription(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, on)

	subs, total, err = ListSubscribers(ctx, a.ID, pipeline.Page{Number: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.NotNil(t, subs)
	assert.Empty(t, subs)
}

func TestListVideos(t *testing.T) {
	ctx := setupDB(t)
	a := mustUser(t, ctx, "alice")
	b := mustUser(t, ctx, "bob")
	for i := 0; i < 12; i++ {
		mustVideo(t, ctx, a, fmt.Sprintf("cat %02d", i), true, base.Add(time.Duration(i)*time.Minute))
	}
	mustVideo(t, ctx, b, "100% dogs", true, base.Add(time.Hour))
	mustVideo(t, ctx, b, "hidden draft", false, base.Add(2*time.Hour))

	t.Run("default sort newest first", func(t *testing.T) {
		videos, total, err := ListVideos(ctx, VideoFilter{Desc: true, Page: pipeline.Page{Number: 1, Limit: 5}})
		require.NoError(t, err)
		assert.Equal(t, int64(13), total)
		require.Len(t, videos, 5)
		assert.Equal(t, "100% dogs", videos[0].Title)
		assert.Equal(t, "bob", videos[0].Owner.Username)
		assert.Equal(t, "cat 11", videos[1].Title)
	})

	t.Run("last page", func(t *testing.T) {
		videos, total, err := ListVideos(ctx, VideoFilter{Desc: true, Page: pipeline.Page{Number: 3, Limit: 5}})
		require.NoError(t, err)
		assert.Equal(t, int64(13), total)
		assert.Len(t, videos, 3)
	})

	t.Run("title ascending", func(t *testing.T) {
		videos, _, err := ListVideos(ctx, VideoFilter{SortColumn: VideoSortFields["title"], Page: pipeline.Page{Number: 1, Limit: 2}})
		require.NoError(t, err)
		require.Len(t, videos, 2)
		assert.Equal(t, "100% dogs", videos[0].Title)
		assert.Equal(t, "cat 00", videos[1].Title)
	})

	t.Run("search escapes wildcards", func(t *testing.T) {
		videos, total, err := ListVideos(ctx, VideoFilter{Query: "0%", Desc: true, Page: pipeline.Page{Number: 1, Limit: 10}})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, videos, 1)
		assert.Equal(t, "100% dogs", videos[0].Title)
	})

	t.Run("search is case insensitive", func(t *testing.T) {
		_, total, err := ListVideos(ctx, VideoFilter{Query: "CAT", Desc: true, Page: pipeline.Page{Number: 1, Limit: 10}})
		require.NoError(t, err)
		assert.Equal(t, int64(12), total)
	})

	t.Run("search keeps non-ascii letters", func(t *testing.T) {
		mustVideo(t, ctx, b, "Éclair Tutorial", true, base.Add(-time.Hour))
		defer DB.Where("title = ?", "Éclair Tutorial").Delete(&model.Video{})

		for _, q := range []string{"Éclair", "Éclair tutorial", "TUTORIAL", "clair"} {
			videos, total, err := ListVideos(ctx, VideoFilter{Query: q, Desc: true, Page: pipeline.Page{Number: 1, Limit: 10}})
			require.NoError(t, err)
			assert.Equal(t, int64(1), total, q)
			require.Len(t, videos, 1, q)
			assert.Equal(t, "Éclair Tutorial", videos[0].Title)
		}
	})

	t.Run("owner filter hides drafts", func(t *testing.T) {
		videos, total, err := ListVideos(ctx, VideoFilter{OwnerID: b.ID, Desc: true, Page: pipeline.Page{Number: 1, Limit: 10}})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, videos, 1)
	})

	t.Run("no match is an empty page", func(t *testing.T) {
		videos, total, err := ListVideos(ctx, VideoFilter{Query: "zebra", Desc: true, Page: pipeline.Page{Number: 1, Limit: 10}})
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
		assert.NotNil(t, videos)
		assert.Empty(t, videos)
	})
}

func TestVideoDetail(t *testing.T) {
	ctx := setupDB(t)
	a := mustUser(t, ctx, "alice")
	b := mustUser(t, ctx, "bob")
	c := mustUser(t, ctx, "carol")
	v := mustVideo(t, ctx, a, "v1", true, base)

	_, err := ToggleLike(ctx, constants.TargetVideo, v.ID, b.ID)
	require.NoError(t, err)
	_, err = ToggleLike(ctx, constants.TargetVideo, v.ID, c.ID)
	require.NoError(t, err)
	_, err = ToggleSubscription(ctx, a.ID, b.ID)
	require.NoError(t, err)

	detail, err := GetVideoDetail(ctx, v.ID, b.ID)
	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Equal(t, int64(2), detail.LikesCount)
	assert.True(t, detail.IsLiked)
	assert.Equal(t, int64(1), detail.SubscribersCount)
	assert.True(t, detail.IsSubscribed)
	assert.Equal(t, "alice", detail.Owner.Username)

	detail, err = GetVideoDetail(ctx, v.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, detail.IsLiked)
	assert.False(t, detail.IsSubscribed)

	missing, err := GetVideoDetail(ctx, uuid.NewString(), a.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTogglePublishAndViews(t *testing.T) {
	ctx := setupDB(t)
	a := mustUser(t, ctx, "alice")
	v := mustVideo(t, ctx, a, "v1", true, base)

	updated, err := TogglePublish(ctx, v.ID)
	require.NoError(t, err)
	assert.False(t, updated.IsPublished)

	updated, err = TogglePublish(ctx, v.ID)
	require.NoError(t, err)
	assert.True(t, updated.IsPublished)

	require.NoError(t, IncrementViews(ctx, v.ID))
	require.NoError(t, IncrementViews(ctx, v.ID))
	got, err := GetVideo(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Views)
}

func TestDeleteVideoCascade(t *testing.T) {
	ctx := setupDB(t)
	a := mustUser(t, ctx, "alice")
	b := mustUser(t, ctx, "bob")
	v := mustVideo(t, ctx, a, "doomed", true, base)
	other := mustVideo(t, ctx, a, "survivor", true, base)

	cm := mustComment(t, ctx, b, v, "nice", base)
	keep := mustComment(t, ctx, b, other, "also nice", base)
	_, err := ToggleLike(ctx, constants.TargetVideo, v.ID, b.ID)
	require.NoError(t, err)
	_, err = ToggleLike(ctx, constants.TargetComment, cm.ID, a.ID)
	require.NoError(t, err)
	_, err = ToggleLike(ctx, constants.TargetComment, keep.ID, a.ID)
	require.NoError(t, err)
	require.NoError(t, RecordWatch(ctx, b.ID, v.ID, base))
	require.NoError(t, RecordWatch(ctx, b.ID, other.ID, base))

	require.NoError(t, DeleteVideo(ctx, v.ID))

	gone, err := GetVideo(ctx, v.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
	assert.Equal(t, int64(0), countRows(t, &model.Comment{}, "video_id = ?", v.ID))
	assert.Equal(t, int64(0), countRows(t, &model.Like{}, "target_id IN ?", []string{v.ID, cm.ID}))
	assert.Equal(t, int64(0), countRows(t, &model.WatchHistory{}, "video_id = ?", v.ID))

	assert.Equal(t, int64(1), countRows(t, &model.Comment{}, "video_id = ?", other.ID))
	assert.Equal(t, int64(1), countRows(t, &model.Like{}, "target_id = ?", keep.ID))
	assert.Equal(t, int64(1), countRows(t, &model.WatchHistory{}, "video_id = ?", other.ID))
}

func TestCommentsAndTweets(t *testing.T) {
	ctx := setupDB(t)
	a := mustUser(t, ctx, "alice")
	b := mustUser(t, ctx, "bob")
	v := mustVideo(t, ctx, a, "v1", true, base)

	comments, total, err := ListComments(ctx, v.ID, a.ID, pipeline.Page{Number: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, comments)

	first := mustComment(t, ctx, b, v, "first", base)
	mustComment(t, ctx, a, v, "second", base.Add(time.Minute))
	_, err = ToggleLike(ctx, constants.TargetComment, first.ID, a.ID)
	require.NoError(t, err)

	comments, total, err = ListComments(ctx, v.ID, a.ID, pipeline.Page{Number: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Content)
	assert.Equal(t, "first", comments[1].Content)
	assert.Equal(t, int64(1), comments[1].LikesCount)
	assert.True(t, comments[1].IsLiked)
	assert.Equal(t, "bob", comments[1].Owner.Username)

	require.NoError(t, UpdateCommentContent(ctx, first.ID, "edited"))
	got, err := GetComment(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Content)

	require.NoError(t, DeleteComment(ctx, first.ID))
	assert.Equal(t, int64(0), countRows(t, &model.Like{}, "target_id = ?", first.ID))

	tw := &model.Tweet{ID: uuid.NewString(), OwnerID: b.ID, Content: "hello"}
	require.NoError(t, CreateTweet(ctx, tw))
	_, err = ToggleLike(ctx, constants.TargetTweet, tw.ID, a.ID)
	require.NoError(t, err)

	tweets, total, err := ListUserTweets(ctx, b.ID, a.ID, pipeline.Page{Number: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, tweets, 1)
	assert.True(t, tweets[0].IsLiked)
	assert.Equal(t, int64(1), tweets[0].LikesCount)

	require.NoError(t, DeleteTweet(ctx, tw.ID))
	assert.Equal(t, int64(0), countRows(t, &model.Like{}, "target_id = ?", tw.ID))
}

func TestLikedVideos(t *testing.T) {
	ctx := setupDB(t)
	a := mustUser(t, ctx, "alice")
	b := mustUser(t, ctx, "bob")
	v1 := mustVideo(t, ctx, a, "v1", true, base)
	v2 := mustVideo(t, ctx, a, "v2", true, base)
	draft := mustVideo(t, ctx, a, "draft", false, base)

	for _, v := range []*model.Video{v1, v2, draft} {
		_, err := ToggleLike(ctx, constants.TargetVideo, v.ID, b.ID)
		require.NoError(t, err)
	}

	videos, total, err := ListLikedVideos(ctx, b.ID, pipeline.Page{Number: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, videos, 2)
	for _, v := range videos {
		assert.Equal(t, "alice", v.Owner.Username)
	}
}

func TestWatchHistory(t *testing.T) {
	ctx := setupDB(t)
	a := mustUser(t, ctx, "alice")
	v1 := mustVideo(t, ctx, a, "v1", true, base)
	v2 := mustVideo(t, ctx, a, "v2", true, base)

	require.NoError(t, RecordWatch(ctx, a.ID, v1.ID, base))
	require.NoError(t, RecordWatch(ctx, a.ID, v2.ID, base.Add(time.Minute)))
	require.NoError(t, RecordWatch(ctx, a.ID, v1.ID, base.Add(2*time.Minute)))

	history, total, err := ListWatchHistory(ctx, a.ID, pipeline.Page{Number: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, history, 2)
	assert.Equal(t, v1.ID, history[0].ID)
	assert.Equal(t, v2.ID, history[1].ID)
}

func TestChannelProfile(t *testing.T) {
	ctx := setupDB(t)
	a := mustUser(t, ctx, "alice")
	b := mustUser(t, ctx, "bob")
	c := mustUser(t, ctx, "carol")
	_, err := ToggleSubscription(ctx, a.ID, b.ID)
	require.NoError(t, err)
	_, err = ToggleSubscription(ctx, a.ID, c.ID)
	require.NoError(t, err)
	_, err = ToggleSubscription(ctx, b.ID, a.ID)
	require.NoError(t, err)

	profile, err := GetChannelProfile(ctx, "Alice", b.ID)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, int64(2), profile.SubscribersCount)
	assert.Equal(t, int64(1), profile.ChannelsSubscribedToCount)
	assert.True(t, profile.IsSubscribed)

	profile, err = GetChannelProfile(ctx, "nobody", b.ID)
	require.NoError(t, err)
	assert.Nil(t, profile)
}
