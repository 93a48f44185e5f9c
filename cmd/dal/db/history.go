package db

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm/clause"

	"videotube.com/cmd/model"
	"videotube.com/pkg/pipeline"
)

// RecordWatch 写入观看记录，重复观看时只刷新watched_at，使视频排到历史最前
func RecordWatch(ctx context.Context, userID, videoID string, at time.Time) error {
	row := &model.WatchHistory{UserID: userID, VideoID: videoID, WatchedAt: at}
	err := DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"watched_at"}),
	}).Create(row).Error
	return errors.WithMessage(err, "dao.RecordWatch failed")
}

// ListWatchHistory 用户观看历史，最近观看的在前
func ListWatchHistory(ctx context.Context, userID string, page pipeline.Page) ([]*model.WatchHistoryItem, int64, error) {
	fields := []pipeline.Field{
		pipeline.Col("v.id", "id"),
		pipeline.Col("v.title", "title"),
		pipeline.Col("v.thumbnail", "thumbnail"),
		pipeline.Col("v.video_file", "video_file"),
		pipeline.Col("v.duration", "duration"),
		pipeline.Col("v.views", "views"),
		pipeline.Col("h.watched_at", "watched_at"),
	}
	p := pipeline.New("watch_histories AS h",
		pipeline.Match("h.user_id = ?", userID),
		pipeline.Join("JOIN videos AS v ON v.id = h.video_id"),
		pipeline.Join("JOIN users AS u ON u.id = v.owner_id"),
		pipeline.Project(append(fields, ownerFields("u")...)...),
		pipeline.Sort("h.watched_at", true),
		pipeline.Sort("h.video_id", true),
		pipeline.Paginate(page),
	)

	history := make([]*model.WatchHistoryItem, 0)
	if err := p.Run(ctx, DB, &history); err != nil {
		return nil, 0, errors.WithMessage(err, "dao.ListWatchHistory failed")
	}
	total, err := p.Count(ctx, DB)
	if err != nil {
		return nil, 0, errors.WithMessage(err, "dao.ListWatchHistory count failed")
	}
	return history, total, nil
}
