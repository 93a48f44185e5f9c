package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"videotube.com/cmd/api/handlers/pack"
	"videotube.com/cmd/interaction/service"
)

type toggleFunc func(actorID, id string) (string, bool, error)

// sendLikeToggle 点赞返回201，取消点赞返回200
func sendLikeToggle(c *app.RequestContext, kind, idKey, id string, toggle toggleFunc) {
	id, liked, err := toggle(pack.Actor(c), id)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	data := map[string]interface{}{idKey: id, "isLiked": liked}
	if liked {
		pack.Created(c, kind+" liked successfully", data)
		return
	}
	pack.Success(c, kind+" unliked successfully", data)
}

func ToggleVideoLike(ctx context.Context, c *app.RequestContext) {
	var param VideoIDParam
	if err := c.BindAndValidate(&param); err != nil {
		pack.SendResponse(c, pack.BindErr(err), nil)
		return
	}
	sendLikeToggle(c, "Video", "videoId", param.VideoID, service.NewLikeService(ctx).ToggleVideoLike)
}

func ToggleCommentLike(ctx context.Context, c *app.RequestContext) {
	var param CommentIDParam
	if err := c.BindAndValidate(&param); err != nil {
		pack.SendResponse(c, pack.BindErr(err), nil)
		return
	}
	sendLikeToggle(c, "Comment", "commentId", param.CommentID, service.NewLikeService(ctx).ToggleCommentLike)
}

func ToggleTweetLike(ctx context.Context, c *app.RequestContext) {
	var param TweetIDParam
	if err := c.BindAndValidate(&param); err != nil {
		pack.SendResponse(c, pack.BindErr(err), nil)
		return
	}
	sendLikeToggle(c, "Tweet", "tweetId", param.TweetID, service.NewLikeService(ctx).ToggleTweetLike)
}

func ListLikedVideos(ctx context.Context, c *app.RequestContext) {
	var param PageParam
	if err := c.BindAndValidate(&param); err != nil {
		pack.SendResponse(c, pack.BindErr(err), nil)
		return
	}
	resp, err := service.NewLikeService(ctx).ListLikedVideos(pack.Actor(c), param.Page, param.Limit)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.Success(c, "Liked videos fetched successfully", resp)
}
