package db

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"videotube.com/cmd/model"
	"videotube.com/pkg/constants"
	"videotube.com/pkg/pipeline"
	"videotube.com/pkg/validate"
)

// VideoSortFields 视频列表允许的排序字段
var VideoSortFields = pipeline.SortFields{
	"views":     "v.views",
	"createdAt": "v.created_at",
	"duration":  "v.duration",
	"title":     "v.title",
}

// VideoFilter 视频列表查询条件，字段均已经过校验
type VideoFilter struct {
	Query      string
	OwnerID    string
	SortColumn string
	Desc       bool
	Page       pipeline.Page
}

func CreateVideo(ctx context.Context, video *model.Video) error {
	return errors.WithMessage(DB.WithContext(ctx).Create(video).Error, "dao.CreateVideo failed")
}

// GetVideo 视频不存在时返回 nil, nil
func GetVideo(ctx context.Context, id string) (*model.Video, error) {
	var video model.Video
	err := DB.WithContext(ctx).Where("id = ?", id).Take(&video).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WithMessage(err, "dao.GetVideo failed")
	}
	return &video, nil
}

func ownerFields(alias string) []pipeline.Field {
	return []pipeline.Field{
		pipeline.Col(alias+".id", "owner_id"),
		pipeline.Col(alias+".username", "owner_username"),
		pipeline.Col(alias+".full_name", "owner_full_name"),
		pipeline.Col(alias+".avatar", "owner_avatar"),
	}
}

// ListVideos 已发布视频列表，支持标题/描述子串搜索与按作者过滤
func ListVideos(ctx context.Context, f VideoFilter) ([]*model.VideoListItem, int64, error) {
	fields := []pipeline.Field{
		pipeline.Col("v.id", "id"),
		pipeline.Col("v.video_file", "video_file"),
		pipeline.Col("v.thumbnail", "thumbnail"),
		pipeline.Col("v.title", "title"),
		pipeline.Col("v.description", "description"),
		pipeline.Col("v.duration", "duration"),
		pipeline.Col("v.views", "views"),
		pipeline.Col("v.is_published", "is_published"),
		pipeline.Col("v.created_at", "created_at"),
		pipeline.Col("v.updated_at", "updated_at"),
	}
	p := pipeline.New("videos AS v", pipeline.Match("v.is_published = ?", true))
	if f.Query != "" {
		pattern := validate.EscapeLike(f.Query)
		p.Then(pipeline.Match("(LOWER(v.title) LIKE LOWER(?) ESCAPE '!' OR LOWER(v.description) LIKE LOWER(?) ESCAPE '!')", pattern, pattern))
	}
	if f.OwnerID != "" {
		p.Then(pipeline.Match("v.owner_id = ?", f.OwnerID))
	}
	column := f.SortColumn
	if column == "" {
		column = VideoSortFields[constants.DefaultSortBy]
	}
	p.Then(
		pipeline.Join("JOIN users AS u ON u.id = v.owner_id"),
		pipeline.Project(append(fields, ownerFields("u")...)...),
		pipeline.Sort(column, f.Desc),
		pipeline.Sort("v.id", f.Desc),
		pipeline.Paginate(f.Page),
	)

	videos := make([]*model.VideoListItem, 0)
	if err := p.Run(ctx, DB, &videos); err != nil {
		return nil, 0, errors.WithMessage(err, "dao.ListVideos failed")
	}
	total, err := p.Count(ctx, DB)
	if err != nil {
		return nil, 0, errors.WithMessage(err, "dao.ListVideos count failed")
	}
	return videos, total, nil
}

// GetVideoDetail 视频详情，附带点赞数、作者频道订阅数以及viewer相关标记
func GetVideoDetail(ctx context.Context, videoID, viewerID string) (*model.VideoDetail, error) {
	fields := []pipeline.Field{
		pipeline.Col("v.id", "id"),
		pipeline.Col("v.title", "title"),
		pipeline.Col("v.description", "description"),
		pipeline.Col("v.views", "views"),
		pipeline.Col("v.thumbnail", "thumbnail"),
		pipeline.Col("v.video_file", "video_file"),
		pipeline.Col("v.duration", "duration"),
		pipeline.Col("v.is_published", "is_published"),
		pipeline.Col("v.created_at", "created_at"),
	}
	p := pipeline.New("videos AS v",
		pipeline.Match("v.id = ?", videoID),
		pipeline.Join("JOIN users AS u ON u.id = v.owner_id"),
		pipeline.Project(append(fields, ownerFields("u")...)...),
		pipeline.CountOf("likes_count", "likes AS l", "l.target_type = ? AND l.target_id = v.id", constants.TargetVideo),
		pipeline.ExistsIn("is_liked", "likes AS l", "l.target_type = ? AND l.target_id = v.id AND l.liked_by = ?", constants.TargetVideo, viewerID),
		pipeline.CountOf("subscribers_count", "subscriptions AS s", "s.channel_id = v.owner_id"),
		pipeline.ExistsIn("is_subscribed", "subscriptions AS s", "s.channel_id = v.owner_id AND s.subscriber_id = ?", viewerID),
	)
	var detail model.VideoDetail
	found, err := p.RunOne(ctx, DB, &detail)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.GetVideoDetail failed")
	}
	if !found {
		return nil, nil
	}
	return &detail, nil
}

// UpdateVideo 部分更新，updates 的键为列名
func UpdateVideo(ctx context.Context, id string, updates map[string]interface{}) error {
	err := DB.WithContext(ctx).Model(&model.Video{}).Where("id = ?", id).Updates(updates).Error
	return errors.WithMessage(err, "dao.UpdateVideo failed")
}

// TogglePublish 在一条UPDATE语句中翻转发布状态，返回更新后的视频
func TogglePublish(ctx context.Context, id string) (*model.Video, error) {
	err := DB.WithContext(ctx).Model(&model.Video{}).Where("id = ?", id).
		Update("is_published", gorm.Expr("NOT is_published")).Error
	if err != nil {
		return nil, errors.WithMessage(err, "dao.TogglePublish failed")
	}
	return GetVideo(ctx, id)
}

// IncrementViews 原子自增播放量
func IncrementViews(ctx context.Context, id string) error {
	err := DB.WithContext(ctx).Model(&model.Video{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
	return errors.WithMessage(err, "dao.IncrementViews failed")
}

// DeleteVideo 删除视频及其评论、评论的点赞、视频的点赞和观看记录，在同一事务中完成
func DeleteVideo(ctx context.Context, id string) error {
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		commentIDs := tx.Model(&model.Comment{}).Select("id").Where("video_id = ?", id)
		steps := []func() error{
			func() error {
				return tx.Where("target_type = ? AND target_id IN (?)", constants.TargetComment, commentIDs).Delete(&model.Like{}).Error
			},
			func() error { return tx.Where("video_id = ?", id).Delete(&model.Comment{}).Error },
			func() error {
				return tx.Where("target_type = ? AND target_id = ?", constants.TargetVideo, id).Delete(&model.Like{}).Error
			},
			func() error { return tx.Where("video_id = ?", id).Delete(&model.WatchHistory{}).Error },
			func() error { return tx.Where("id = ?", id).Delete(&model.Video{}).Error },
		}
		for _, step := range steps {
			if err := step(); err != nil {
				return err
			}
		}
		return nil
	})
	return errors.WithMessage(err, "dao.DeleteVideo failed")
}
