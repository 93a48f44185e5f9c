package service

import (
	"context"
	"mime/multipart"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"videotube.com/cmd/dal/db"
	"videotube.com/cmd/infras"
	"videotube.com/cmd/model"
	"videotube.com/pkg/constants"
	"videotube.com/pkg/errno"
	"videotube.com/pkg/mq"
	"videotube.com/pkg/utils"
	"videotube.com/pkg/validate"
)

type VideoService struct {
	ctx context.Context
}

func NewVideoService(ctx context.Context) *VideoService {
	return &VideoService{ctx: ctx}
}

type ListVideosRequest struct {
	Page     string
	Limit    string
	Query    string
	SortBy   string
	SortType string
	UserID   string
}

type PublishVideoRequest struct {
	Title       string
	Description string
	VideoFile   *multipart.FileHeader
	Thumbnail   *multipart.FileHeader
}

// UpdateVideoRequest 为nil的字段保持不变
type UpdateVideoRequest struct {
	Title       *string
	Description *string
	Thumbnail   *multipart.FileHeader
}

func (v *VideoService) ListVideos(req *ListVideosRequest) (*model.VideoPage, error) {
	page, err := validate.Pagination(req.Page, req.Limit)
	if err != nil {
		return nil, err
	}
	column, desc, err := validate.Sort(db.VideoSortFields, req.SortBy, req.SortType)
	if err != nil {
		return nil, err
	}
	filter := db.VideoFilter{
		Query:      strings.TrimSpace(req.Query),
		SortColumn: column,
		Desc:       desc,
		Page:       page,
	}
	if strings.TrimSpace(req.UserID) != "" {
		if filter.OwnerID, err = validate.ObjectID("userId", req.UserID); err != nil {
			return nil, err
		}
	}

	videos, total, err := db.ListVideos(v.ctx, filter)
	if err != nil {
		return nil, errors.WithMessage(err, "list videos failed")
	}
	return &model.VideoPage{Videos: videos, PageInfo: model.NewPageInfo(page, total)}, nil
}

func (v *VideoService) PublishVideo(actorID string, req *PublishVideoRequest) (*model.Video, error) {
	title, err := validate.Required("title", req.Title)
	if err != nil {
		return nil, err
	}
	description, err := validate.Required("description", req.Description)
	if err != nil {
		return nil, err
	}
	if req.VideoFile == nil {
		return nil, errno.BadRequest("videoFile is required")
	}
	if req.Thumbnail == nil {
		return nil, errno.BadRequest("thumbnail is required")
	}
	if infras.Storage == nil {
		return nil, errno.OssErr
	}

	duration, err := utils.ProbeUploadDuration(req.VideoFile)
	if err != nil {
		hlog.CtxWarnf(v.ctx, "probe duration of %s failed, storing 0: %v", req.VideoFile.Filename, err)
		duration = 0
	}

	videoURL, err := infras.Storage.Upload(v.ctx, constants.FolderVideos, req.VideoFile)
	if err != nil {
		return nil, errno.OssErr.WithMessage("Failed to upload video")
	}
	thumbnailURL, err := infras.Storage.Upload(v.ctx, constants.FolderThumbnails, req.Thumbnail)
	if err != nil {
		infras.CleanupMedia(v.ctx, "", mq.ReasonUploadAborted, videoURL)
		return nil, errno.OssErr.WithMessage("Failed to upload thumbnail")
	}

	now := time.Now()
	video := &model.Video{
		ID:          uuid.NewString(),
		OwnerID:     actorID,
		Title:       title,
		Description: description,
		VideoFile:   videoURL,
		Thumbnail:   thumbnailURL,
		Duration:    duration,
		IsPublished: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err = db.CreateVideo(v.ctx, video); err != nil {
		infras.CleanupMedia(v.ctx, video.ID, mq.ReasonUploadAborted, videoURL, thumbnailURL)
		return nil, errors.WithMessage(err, "publish video failed")
	}
	return video, nil
}

// GetVideo 返回视频详情并记录一次观看
func (v *VideoService) GetVideo(actorID, videoID string) (*model.VideoDetail, error) {
	video, err := LoadVisibleVideo(v.ctx, videoID, actorID)
	if err != nil {
		return nil, err
	}

	detail, err := db.GetVideoDetail(v.ctx, video.ID, actorID)
	if err != nil {
		return nil, errors.WithMessage(err, "load video detail failed")
	}
	if detail == nil {
		// 作者账号不存在时关联不到owner，不计观看
		return nil, errVideoNotFound
	}

	counted, err := v.recordView(actorID, video.ID)
	if err != nil {
		return nil, err
	}
	if counted {
		detail.Views++
	}
	hlog.CtxDebugf(v.ctx, "video %s viewed by %s, counted=%v", video.ID, actorID, counted)
	return detail, nil
}

func (v *VideoService) recordView(actorID, videoID string) (bool, error) {
	first := true
	if infras.Views != nil {
		var err error
		if first, err = infras.Views.FirstView(v.ctx, videoID, actorID); err != nil {
			// redis故障时按新观看处理
			hlog.CtxWarnf(v.ctx, "view de-duplication failed: %v", err)
			first = true
		}
	}
	if first {
		if err := db.IncrementViews(v.ctx, videoID); err != nil {
			return false, errors.WithMessage(err, "increment views failed")
		}
	}
	if err := db.RecordWatch(v.ctx, actorID, videoID, time.Now()); err != nil {
		return false, errors.WithMessage(err, "record watch history failed")
	}
	return first, nil
}

func (v *VideoService) UpdateVideo(actorID, videoID string, req *UpdateVideoRequest) (*model.Video, error) {
	if req.Title == nil && req.Description == nil && req.Thumbnail == nil {
		return nil, errno.BadRequest("At least one of title, description or thumbnail is required")
	}
	updates := map[string]interface{}{}
	if req.Title != nil {
		title, err := validate.Required("title", *req.Title)
		if err != nil {
			return nil, err
		}
		updates["title"] = title
	}
	if req.Description != nil {
		description, err := validate.Required("description", *req.Description)
		if err != nil {
			return nil, err
		}
		updates["description"] = description
	}

	video, err := loadOwnedVideo(v.ctx, videoID, actorID)
	if err != nil {
		return nil, err
	}

	var thumbnailURL string
	if req.Thumbnail != nil {
		if infras.Storage == nil {
			return nil, errno.OssErr
		}
		if thumbnailURL, err = infras.Storage.Upload(v.ctx, constants.FolderThumbnails, req.Thumbnail); err != nil {
			return nil, errno.OssErr.WithMessage("Failed to upload thumbnail")
		}
		updates["thumbnail"] = thumbnailURL
	}

	if err = db.UpdateVideo(v.ctx, video.ID, updates); err != nil {
		infras.CleanupMedia(v.ctx, video.ID, mq.ReasonUploadAborted, thumbnailURL)
		return nil, errors.WithMessage(err, "update video failed")
	}
	if thumbnailURL != "" {
		infras.CleanupMedia(v.ctx, video.ID, mq.ReasonThumbnailReplace, video.Thumbnail)
	}
	return db.GetVideo(v.ctx, video.ID)
}

// DeleteVideo 删除视频、其评论与点赞以及观看记录，随后清理媒体文件
func (v *VideoService) DeleteVideo(actorID, videoID string) error {
	video, err := loadOwnedVideo(v.ctx, videoID, actorID)
	if err != nil {
		return err
	}
	if err = db.DeleteVideo(v.ctx, video.ID); err != nil {
		return errors.WithMessage(err, "delete video failed")
	}
	infras.CleanupMedia(v.ctx, video.ID, mq.ReasonVideoDeleted, video.VideoFile, video.Thumbnail)
	return nil
}

func (v *VideoService) TogglePublish(actorID, videoID string) (*model.Video, error) {
	video, err := loadOwnedVideo(v.ctx, videoID, actorID)
	if err != nil {
		return nil, err
	}
	updated, err := db.TogglePublish(v.ctx, video.ID)
	if err != nil {
		return nil, errors.WithMessage(err, "toggle publish failed")
	}
	if updated == nil {
		return nil, errVideoNotFound
	}
	return updated, nil
}
