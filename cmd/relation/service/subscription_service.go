package service

import (
	"context"

	"github.com/pkg/errors"

	"videotube.com/cmd/dal/db"
	"videotube.com/cmd/model"
	"videotube.com/pkg/errno"
	"videotube.com/pkg/validate"
)

type SubscriptionService struct {
	ctx context.Context
}

func NewSubscriptionService(ctx context.Context) *SubscriptionService {
	return &SubscriptionService{ctx: ctx}
}

// ToggleSubscription 返回频道ID与切换后的订阅状态，不能订阅自己
func (s *SubscriptionService) ToggleSubscription(actorID, channelID string) (string, bool, error) {
	channel, err := s.loadUser("channelId", channelID)
	if err != nil {
		return "", false, err
	}
	if channel.ID == actorID {
		return "", false, errno.BadRequest("You cannot subscribe to your own channel")
	}
	subscribed, err := db.ToggleSubscription(s.ctx, channel.ID, actorID)
	if err != nil {
		return "", false, errors.WithMessage(err, "toggle subscription failed")
	}
	return channel.ID, subscribed, nil
}

// ListSubscribers 频道的订阅者列表
func (s *SubscriptionService) ListSubscribers(channelID, page, limit string) (*model.SubscriberPage, error) {
	p, err := validate.Pagination(page, limit)
	if err != nil {
		return nil, err
	}
	channel, err := s.loadUser("channelId", channelID)
	if err != nil {
		return nil, err
	}
	subscribers, total, err := db.ListSubscribers(s.ctx, channel.ID, p)
	if err != nil {
		return nil, errors.WithMessage(err, "list subscribers failed")
	}
	return &model.SubscriberPage{Subscribers: subscribers, PageInfo: model.NewPageInfo(p, total)}, nil
}

// ListSubscribedChannels 用户订阅的频道列表
func (s *SubscriptionService) ListSubscribedChannels(subscriberID, page, limit string) (*model.ChannelPage, error) {
	p, err := validate.Pagination(page, limit)
	if err != nil {
		return nil, err
	}
	subscriber, err := s.loadUser("subscriberId", subscriberID)
	if err != nil {
		return nil, err
	}
	channels, total, err := db.ListSubscribedChannels(s.ctx, subscriber.ID, p)
	if err != nil {
		return nil, errors.WithMessage(err, "list subscribed channels failed")
	}
	return &model.ChannelPage{Channels: channels, PageInfo: model.NewPageInfo(p, total)}, nil
}

func (s *SubscriptionService) loadUser(name, rawID string) (*model.User, error) {
	id, err := validate.ObjectID(name, rawID)
	if err != nil {
		return nil, err
	}
	user, err := db.GetUserByID(s.ctx, id)
	if err != nil {
		return nil, errors.WithMessage(err, "load user failed")
	}
	if user == nil {
		return nil, errno.NotFound("Channel not found")
	}
	return user, nil
}
