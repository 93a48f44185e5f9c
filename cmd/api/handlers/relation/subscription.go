package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"videotube.com/cmd/api/handlers/pack"
	"videotube.com/cmd/relation/service"
)

func ToggleSubscription(ctx context.Context, c *app.RequestContext) {
	var param ChannelParam
	if err := c.BindAndValidate(&param); err != nil {
		pack.SendResponse(c, pack.BindErr(err), nil)
		return
	}
	channelID, subscribed, err := service.NewSubscriptionService(ctx).ToggleSubscription(pack.Actor(c), param.ChannelID)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	data := map[string]interface{}{"channelId": channelID, "isSubscribed": subscribed}
	if subscribed {
		pack.Created(c, "Channel subscribed successfully", data)
		return
	}
	pack.Success(c, "Channel unsubscribed successfully", data)
}

func ListSubscribers(ctx context.Context, c *app.RequestContext) {
	var param ChannelParam
	if err := c.BindAndValidate(&param); err != nil {
		pack.SendResponse(c, pack.BindErr(err), nil)
		return
	}
	resp, err := service.NewSubscriptionService(ctx).ListSubscribers(param.ChannelID, param.Page, param.Limit)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.Success(c, "Subscribers fetched successfully", resp)
}

func ListSubscribedChannels(ctx context.Context, c *app.RequestContext) {
	var param SubscriberParam
	if err := c.BindAndValidate(&param); err != nil {
		pack.SendResponse(c, pack.BindErr(err), nil)
		return
	}
	resp, err := service.NewSubscriptionService(ctx).ListSubscribedChannels(param.SubscriberID, param.Page, param.Limit)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.Success(c, "Subscribed channels fetched successfully", resp)
}
