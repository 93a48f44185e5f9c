package db

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"videotube.com/cmd/model"
	"videotube.com/pkg/constants"
	"videotube.com/pkg/pipeline"
)

func CreateTweet(ctx context.Context, tweet *model.Tweet) error {
	return errors.WithMessage(DB.WithContext(ctx).Create(tweet).Error, "dao.CreateTweet failed")
}

// GetTweet 推文不存在时返回 nil, nil
func GetTweet(ctx context.Context, id string) (*model.Tweet, error) {
	var tweet model.Tweet
	err := DB.WithContext(ctx).Where("id = ?", id).Take(&tweet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WithMessage(err, "dao.GetTweet failed")
	}
	return &tweet, nil
}

func UpdateTweetContent(ctx context.Context, id, content string) error {
	err := DB.WithContext(ctx).Model(&model.Tweet{}).Where("id = ?", id).Update("content", content).Error
	return errors.WithMessage(err, "dao.UpdateTweetContent failed")
}

// DeleteTweet 删除推文及其点赞
func DeleteTweet(ctx context.Context, id string) error {
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_type = ? AND target_id = ?", constants.TargetTweet, id).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Tweet{}).Error
	})
	return errors.WithMessage(err, "dao.DeleteTweet failed")
}

func ListUserTweets(ctx context.Context, ownerID, viewerID string, page pipeline.Page) ([]*model.TweetItem, int64, error) {
	fields := []pipeline.Field{
		pipeline.Col("t.id", "id"),
		pipeline.Col("t.content", "content"),
		pipeline.Col("t.created_at", "created_at"),
		pipeline.Col("t.updated_at", "updated_at"),
	}
	p := pipeline.New("tweets AS t",
		pipeline.Match("t.owner_id = ?", ownerID),
		pipeline.Join("JOIN users AS u ON u.id = t.owner_id"),
		pipeline.Project(append(fields, ownerFields("u")...)...),
		pipeline.CountOf("likes_count", "likes AS l", "l.target_type = ? AND l.target_id = t.id", constants.TargetTweet),
		pipeline.ExistsIn("is_liked", "likes AS l", "l.target_type = ? AND l.target_id = t.id AND l.liked_by = ?", constants.TargetTweet, viewerID),
		pipeline.Sort("t.created_at", true),
		pipeline.Sort("t.id", true),
		pipeline.Paginate(page),
	)

	tweets := make([]*model.TweetItem, 0)
	if err := p.Run(ctx, DB, &tweets); err != nil {
		return nil, 0, errors.WithMessage(err, "dao.ListUserTweets failed")
	}
	total, err := p.Count(ctx, DB)
	if err != nil {
		return nil, 0, errors.WithMessage(err, "dao.ListUserTweets count failed")
	}
	return tweets, total, nil
}
