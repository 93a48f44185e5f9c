package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"videotube.com/cmd/api/handlers/pack"
	"videotube.com/cmd/interaction/service"
)

func CreateTweet(ctx context.Context, c *app.RequestContext) {
	var param CreateTweetParam
	if err := c.BindAndValidate(&param); err != nil {
		pack.SendResponse(c, pack.BindErr(err), nil)
		return
	}
	tweet, err := service.NewTweetService(ctx).CreateTweet(pack.Actor(c), param.Content)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.Created(c, "Tweet created successfully", tweet)
}

func ListUserTweets(ctx context.Context, c *app.RequestContext) {
	var param ListTweetParam
	if err := c.BindAndValidate(&param); err != nil {
		pack.SendResponse(c, pack.BindErr(err), nil)
		return
	}
	resp, err := service.NewTweetService(ctx).ListUserTweets(pack.Actor(c), param.UserID, param.Page, param.Limit)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.Success(c, "Tweets fetched successfully", resp)
}

func UpdateTweet(ctx context.Context, c *app.RequestContext) {
	var param UpdateTweetParam
	if err := c.BindAndValidate(&param); err != nil {
		pack.SendResponse(c, pack.BindErr(err), nil)
		return
	}
	tweet, err := service.NewTweetService(ctx).UpdateTweet(pack.Actor(c), param.TweetID, param.Content)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.Success(c, "Tweet updated successfully", tweet)
}

func DeleteTweet(ctx context.Context, c *app.RequestContext) {
	var param TweetIDParam
	if err := c.BindAndValidate(&param); err != nil {
		pack.SendResponse(c, pack.BindErr(err), nil)
		return
	}
	if err := service.NewTweetService(ctx).DeleteTweet(pack.Actor(c), param.TweetID); err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.Success(c, "Tweet deleted successfully", map[string]string{"tweetId": param.TweetID})
}
