package service

import (
	"context"

	"github.com/pkg/errors"

	"videotube.com/cmd/dal/db"
	"videotube.com/cmd/model"
	videoservice "videotube.com/cmd/video/service"
	"videotube.com/pkg/constants"
	"videotube.com/pkg/errno"
	"videotube.com/pkg/validate"
)

var errVideoNotFound = errno.NotFound("Video not found")

// LikeService 点赞切换：每次请求只执行一次删除或插入
type LikeService struct {
	ctx context.Context
}

func NewLikeService(ctx context.Context) *LikeService {
	return &LikeService{ctx: ctx}
}

// ToggleVideoLike 返回视频ID（已校验）与切换后的状态
func (s *LikeService) ToggleVideoLike(actorID, videoID string) (string, bool, error) {
	video, err := videoservice.LoadVisibleVideo(s.ctx, videoID, actorID)
	if err != nil {
		return "", false, err
	}
	liked, err := db.ToggleLike(s.ctx, constants.TargetVideo, video.ID, actorID)
	if errors.Is(err, db.ErrLikeTargetMissing) {
		return "", false, errVideoNotFound
	}
	if err != nil {
		return "", false, errors.WithMessage(err, "toggle video like failed")
	}
	return video.ID, liked, nil
}

func (s *LikeService) ToggleCommentLike(actorID, commentID string) (string, bool, error) {
	id, err := validate.ObjectID("commentId", commentID)
	if err != nil {
		return "", false, err
	}
	comment, err := db.GetComment(s.ctx, id)
	if err != nil {
		return "", false, errors.WithMessage(err, "load comment failed")
	}
	if comment == nil {
		return "", false, errCommentNotFound
	}
	// 评论所在视频对actor不可见时，评论同样不可见
	if _, err := videoservice.LoadVisibleVideo(s.ctx, comment.VideoID, actorID); err != nil {
		if errno.ConvertErr(err).ErrCode == errno.NotFoundCode {
			return "", false, errCommentNotFound
		}
		return "", false, err
	}
	liked, err := db.ToggleLike(s.ctx, constants.TargetComment, comment.ID, actorID)
	if errors.Is(err, db.ErrLikeTargetMissing) {
		return "", false, errCommentNotFound
	}
	if err != nil {
		return "", false, errors.WithMessage(err, "toggle comment like failed")
	}
	return comment.ID, liked, nil
}

func (s *LikeService) ToggleTweetLike(actorID, tweetID string) (string, bool, error) {
	id, err := validate.ObjectID("tweetId", tweetID)
	if err != nil {
		return "", false, err
	}
	tweet, err := db.GetTweet(s.ctx, id)
	if err != nil {
		return "", false, errors.WithMessage(err, "load tweet failed")
	}
	if tweet == nil {
		return "", false, errTweetNotFound
	}
	liked, err := db.ToggleLike(s.ctx, constants.TargetTweet, tweet.ID, actorID)
	if errors.Is(err, db.ErrLikeTargetMissing) {
		return "", false, errTweetNotFound
	}
	if err != nil {
		return "", false, errors.WithMessage(err, "toggle tweet like failed")
	}
	return tweet.ID, liked, nil
}

func (s *LikeService) ListLikedVideos(actorID, page, limit string) (*model.LikedVideoPage, error) {
	p, err := validate.Pagination(page, limit)
	if err != nil {
		return nil, err
	}
	videos, total, err := db.ListLikedVideos(s.ctx, actorID, p)
	if err != nil {
		return nil, errors.WithMessage(err, "list liked videos failed")
	}
	return &model.LikedVideoPage{Videos: videos, PageInfo: model.NewPageInfo(p, total)}, nil
}
