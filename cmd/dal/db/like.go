package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"videotube.com/cmd/model"
	"videotube.com/pkg/constants"
	"videotube.com/pkg/pipeline"
)

// ErrLikeTargetMissing 插入点赞时目标已被删除
var ErrLikeTargetMissing = errors.New("like target does not exist")

var likeTargetTables = map[string]string{
	constants.TargetVideo:   (model.Video{}).TableName(),
	constants.TargetComment: (model.Comment{}).TableName(),
	constants.TargetTweet:   (model.Tweet{}).TableName(),
}

// ToggleLike 切换点赞状态，返回切换后是否处于已点赞状态
// 先删除，未删除到记录再插入；插入与目标存在性检查在同一条语句里完成，
// 目标已被级联删除时返回 ErrLikeTargetMissing；并发插入触发唯一索引冲突时视为已点赞
func ToggleLike(ctx context.Context, targetType, targetID, actorID string) (bool, error) {
	table, ok := likeTargetTables[targetType]
	if !ok {
		return false, errors.Errorf("dao.ToggleLike unknown target type %q", targetType)
	}
	res := DB.WithContext(ctx).
		Where("target_type = ? AND target_id = ? AND liked_by = ?", targetType, targetID, actorID).
		Delete(&model.Like{})
	if res.Error != nil {
		return false, errors.WithMessage(res.Error, "dao.ToggleLike delete failed")
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	res = DB.WithContext(ctx).Exec(
		"INSERT INTO likes (id, target_type, target_id, liked_by, created_at) SELECT ?, ?, ?, ?, ? FROM "+table+" WHERE id = ?",
		uuid.NewString(), targetType, targetID, actorID, DB.NowFunc(), targetID,
	)
	if res.Error != nil {
		if isDuplicate(res.Error) {
			return true, nil
		}
		return false, errors.WithMessage(res.Error, "dao.ToggleLike create failed")
	}
	if res.RowsAffected == 0 {
		return false, ErrLikeTargetMissing
	}
	return true, nil
}

// IsLiked 查询actor是否点赞了目标
func IsLiked(ctx context.Context, targetType, targetID, actorID string) (bool, error) {
	var count int64
	err := DB.WithContext(ctx).Model(&model.Like{}).
		Where("target_type = ? AND target_id = ? AND liked_by = ?", targetType, targetID, actorID).
		Count(&count).Error
	if err != nil {
		return false, errors.WithMessage(err, "dao.IsLiked failed")
	}
	return count > 0, nil
}

// ListLikedVideos actor点赞过的视频，按点赞时间倒序；他人未发布的视频不会出现
func ListLikedVideos(ctx context.Context, actorID string, page pipeline.Page) ([]*model.LikedVideoItem, int64, error) {
	fields := []pipeline.Field{
		pipeline.Col("v.id", "id"),
		pipeline.Col("v.title", "title"),
		pipeline.Col("v.thumbnail", "thumbnail"),
		pipeline.Col("v.video_file", "video_file"),
		pipeline.Col("v.description", "description"),
		pipeline.Col("v.duration", "duration"),
		pipeline.Col("v.views", "views"),
		pipeline.Col("l.created_at", "liked_at"),
	}
	p := pipeline.New("likes AS l",
		pipeline.Match("l.target_type = ? AND l.liked_by = ?", constants.TargetVideo, actorID),
		pipeline.Join("JOIN videos AS v ON v.id = l.target_id"),
		pipeline.Join("JOIN users AS u ON u.id = v.owner_id"),
		pipeline.Match("(v.is_published = ? OR v.owner_id = ?)", true, actorID),
		pipeline.Project(append(fields, ownerFields("u")...)...),
		pipeline.Sort("l.created_at", true),
		pipeline.Sort("l.id", true),
		pipeline.Paginate(page),
	)

	videos := make([]*model.LikedVideoItem, 0)
	if err := p.Run(ctx, DB, &videos); err != nil {
		return nil, 0, errors.WithMessage(err, "dao.ListLikedVideos failed")
	}
	total, err := p.Count(ctx, DB)
	if err != nil {
		return nil, 0, errors.WithMessage(err, "dao.ListLikedVideos count failed")
	}
	return videos, total, nil
}
