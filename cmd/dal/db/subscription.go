package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"videotube.com/cmd/model"
	"videotube.com/pkg/pipeline"
)

// ToggleSubscription 切换订阅状态，返回切换后是否处于已订阅状态
func ToggleSubscription(ctx context.Context, channelID, subscriberID string) (bool, error) {
	res := DB.WithContext(ctx).
		Where("channel_id = ? AND subscriber_id = ?", channelID, subscriberID).
		Delete(&model.Subscription{})
	if res.Error != nil {
		return false, errors.WithMessage(res.Error, "dao.ToggleSubscription delete failed")
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	sub := &model.Subscription{
		ID:           uuid.NewString(),
		ChannelID:    channelID,
		SubscriberID: subscriberID,
		CreatedAt:    time.Now(),
	}
	if err := DB.WithContext(ctx).Create(sub).Error; err != nil && !isDuplicate(err) {
		return false, errors.WithMessage(err, "dao.ToggleSubscription create failed")
	}
	return true, nil
}

func userFields(alias string) []pipeline.Field {
	return []pipeline.Field{
		pipeline.Col(alias+".id", "id"),
		pipeline.Col(alias+".username", "username"),
		pipeline.Col(alias+".full_name", "full_name"),
		pipeline.Col(alias+".avatar", "avatar"),
	}
}

// ListSubscribers 频道的订阅者，按订阅时间倒序
func ListSubscribers(ctx context.Context, channelID string, page pipeline.Page) ([]*model.SubscriberItem, int64, error) {
	p := pipeline.New("subscriptions AS s",
		pipeline.Match("s.channel_id = ?", channelID),
		pipeline.Join("JOIN users AS u ON u.id = s.subscriber_id"),
		pipeline.Project(append(userFields("u"), pipeline.Col("s.created_at", "subscribed_at"))...),
		pipeline.Sort("s.created_at", true),
		pipeline.Sort("s.id", true),
		pipeline.Paginate(page),
	)

	subscribers := make([]*model.SubscriberItem, 0)
	if err := p.Run(ctx, DB, &subscribers); err != nil {
		return nil, 0, errors.WithMessage(err, "dao.ListSubscribers failed")
	}
	total, err := p.Count(ctx, DB)
	if err != nil {
		return nil, 0, errors.WithMessage(err, "dao.ListSubscribers count failed")
	}
	return subscribers, total, nil
}

// ListSubscribedChannels 用户订阅的频道，附带每个频道的订阅者数
func ListSubscribedChannels(ctx context.Context, subscriberID string, page pipeline.Page) ([]*model.ChannelItem, int64, error) {
	p := pipeline.New("subscriptions AS s",
		pipeline.Match("s.subscriber_id = ?", subscriberID),
		pipeline.Join("JOIN users AS u ON u.id = s.channel_id"),
		pipeline.Project(append(userFields("u"), pipeline.Col("s.created_at", "subscribed_at"))...),
		pipeline.CountOf("subscribers_count", "subscriptions AS x", "x.channel_id = u.id"),
		pipeline.Sort("s.created_at", true),
		pipeline.Sort("s.id", true),
		pipeline.Paginate(page),
	)

	channels := make([]*model.ChannelItem, 0)
	if err := p.Run(ctx, DB, &channels); err != nil {
		return nil, 0, errors.WithMessage(err, "dao.ListSubscribedChannels failed")
	}
	total, err := p.Count(ctx, DB)
	if err != nil {
		return nil, 0, errors.WithMessage(err, "dao.ListSubscribedChannels count failed")
	}
	return channels, total, nil
}
