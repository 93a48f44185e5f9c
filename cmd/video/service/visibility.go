package service

import (
	"context"

	"github.com/pkg/errors"

	"videotube.com/cmd/dal/db"
	"videotube.com/cmd/model"
	"videotube.com/pkg/errno"
	"videotube.com/pkg/validate"
)

var errVideoNotFound = errno.NotFound("Video not found")

// LoadVisibleVideo 未发布的视频只对作者可见，其他人看到的是404
func LoadVisibleVideo(ctx context.Context, videoID, actorID string) (*model.Video, error) {
	id, err := validate.ObjectID("videoId", videoID)
	if err != nil {
		return nil, err
	}
	video, err := db.GetVideo(ctx, id)
	if err != nil {
		return nil, errors.WithMessage(err, "load video failed")
	}
	if video == nil || (!video.IsPublished && video.OwnerID != actorID) {
		return nil, errVideoNotFound
	}
	return video, nil
}

// loadOwnedVideo 视频不存在返回404，非作者返回403
func loadOwnedVideo(ctx context.Context, videoID, actorID string) (*model.Video, error) {
	id, err := validate.ObjectID("videoId", videoID)
	if err != nil {
		return nil, err
	}
	video, err := db.GetVideo(ctx, id)
	if err != nil {
		return nil, errors.WithMessage(err, "load video failed")
	}
	if video == nil {
		return nil, errVideoNotFound
	}
	if video.OwnerID != actorID {
		return nil, errno.Forbidden("You are not the owner of this video")
	}
	return video, nil
}
