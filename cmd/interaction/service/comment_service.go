package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"videotube.com/cmd/dal/db"
	"videotube.com/cmd/model"
	videoservice "videotube.com/cmd/video/service"
	"videotube.com/pkg/errno"
	"videotube.com/pkg/validate"
)

var errCommentNotFound = errno.NotFound("Comment not found")

type CommentService struct {
	ctx context.Context
}

func NewCommentService(ctx context.Context) *CommentService {
	return &CommentService{ctx: ctx}
}

// ListComments 视频不存在时返回404；没有评论时返回空列表
func (s *CommentService) ListComments(actorID, videoID, page, limit string) (*model.CommentPage, error) {
	p, err := validate.Pagination(page, limit)
	if err != nil {
		return nil, err
	}
	video, err := videoservice.LoadVisibleVideo(s.ctx, videoID, actorID)
	if err != nil {
		return nil, err
	}
	comments, total, err := db.ListComments(s.ctx, video.ID, actorID, p)
	if err != nil {
		return nil, errors.WithMessage(err, "list comments failed")
	}
	return &model.CommentPage{Comments: comments, PageInfo: model.NewPageInfo(p, total)}, nil
}

func (s *CommentService) AddComment(actorID, videoID, content string) (*model.Comment, error) {
	content, err := validate.Content("content", content, 0)
	if err != nil {
		return nil, err
	}
	video, err := videoservice.LoadVisibleVideo(s.ctx, videoID, actorID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	comment := &model.Comment{
		ID:        uuid.NewString(),
		VideoID:   video.ID,
		OwnerID:   actorID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = db.CreateComment(s.ctx, comment); err != nil {
		return nil, errors.WithMessage(err, "add comment failed")
	}
	return comment, nil
}

func (s *CommentService) UpdateComment(actorID, commentID, content string) (*model.Comment, error) {
	content, err := validate.Content("content", content, 0)
	if err != nil {
		return nil, err
	}
	comment, err := s.loadOwned(actorID, commentID)
	if err != nil {
		return nil, err
	}
	if err = db.UpdateCommentContent(s.ctx, comment.ID, content); err != nil {
		return nil, errors.WithMessage(err, "update comment failed")
	}
	return db.GetComment(s.ctx, comment.ID)
}

func (s *CommentService) DeleteComment(actorID, commentID string) error {
	comment, err := s.loadOwned(actorID, commentID)
	if err != nil {
		return err
	}
	return errors.WithMessage(db.DeleteComment(s.ctx, comment.ID), "delete comment failed")
}

func (s *CommentService) loadOwned(actorID, commentID string) (*model.Comment, error) {
	id, err := validate.ObjectID("commentId", commentID)
	if err != nil {
		return nil, err
	}
	comment, err := db.GetComment(s.ctx, id)
	if err != nil {
		return nil, errors.WithMessage(err, "load comment failed")
	}
	if comment == nil {
		return nil, errCommentNotFound
	}
	if comment.OwnerID != actorID {
		return nil, errno.Forbidden("You are not the owner of this comment")
	}
	return comment, nil
}
