package db

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"videotube.com/cmd/model"
	"videotube.com/pkg/constants"
	"videotube.com/pkg/pipeline"
)

func CreateComment(ctx context.Context, comment *model.Comment) error {
	return errors.WithMessage(DB.WithContext(ctx).Create(comment).Error, "dao.CreateComment failed")
}

// GetComment 评论不存在时返回 nil, nil
func GetComment(ctx context.Context, id string) (*model.Comment, error) {
	var comment model.Comment
	err := DB.WithContext(ctx).Where("id = ?", id).Take(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WithMessage(err, "dao.GetComment failed")
	}
	return &comment, nil
}

func UpdateCommentContent(ctx context.Context, id, content string) error {
	err := DB.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", id).Update("content", content).Error
	return errors.WithMessage(err, "dao.UpdateCommentContent failed")
}

// DeleteComment 删除评论及其点赞
func DeleteComment(ctx context.Context, id string) error {
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_type = ? AND target_id = ?", constants.TargetComment, id).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Comment{}).Error
	})
	return errors.WithMessage(err, "dao.DeleteComment failed")
}

// ListComments 视频的评论列表，按创建时间倒序
func ListComments(ctx context.Context, videoID, viewerID string, page pipeline.Page) ([]*model.CommentItem, int64, error) {
	fields := []pipeline.Field{
		pipeline.Col("c.id", "id"),
		pipeline.Col("c.content", "content"),
		pipeline.Col("c.created_at", "created_at"),
		pipeline.Col("c.updated_at", "updated_at"),
	}
	p := pipeline.New("comments AS c",
		pipeline.Match("c.video_id = ?", videoID),
		pipeline.Join("JOIN users AS u ON u.id = c.owner_id"),
		pipeline.Project(append(fields, ownerFields("u")...)...),
		pipeline.CountOf("likes_count", "likes AS l", "l.target_type = ? AND l.target_id = c.id", constants.TargetComment),
		pipeline.ExistsIn("is_liked", "likes AS l", "l.target_type = ? AND l.target_id = c.id AND l.liked_by = ?", constants.TargetComment, viewerID),
		pipeline.Sort("c.created_at", true),
		pipeline.Sort("c.id", true),
		pipeline.Paginate(page),
	)

	comments := make([]*model.CommentItem, 0)
	if err := p.Run(ctx, DB, &comments); err != nil {
		return nil, 0, errors.WithMessage(err, "dao.ListComments failed")
	}
	total, err := p.Count(ctx, DB)
	if err != nil {
		return nil, 0, errors.WithMessage(err, "dao.ListComments count failed")
	}
	return comments, total, nil
}
