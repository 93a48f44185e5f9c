package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"videotube.com/cmd/api/handlers/pack"
	"videotube.com/cmd/interaction/service"
)

func ListComments(ctx context.Context, c *app.RequestContext) {
	var param ListCommentParam
	if err := c.BindAndValidate(&param); err != nil {
		pack.SendResponse(c, pack.BindErr(err), nil)
		return
	}
	resp, err := service.NewCommentService(ctx).ListComments(pack.Actor(c), param.VideoID, param.Page, param.Limit)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.Success(c, "Comments fetched successfully", resp)
}

func AddComment(ctx context.Context, c *app.RequestContext) {
	var param AddCommentParam
	if err := c.BindAndValidate(&param); err != nil {
		pack.SendResponse(c, pack.BindErr(err), nil)
		return
	}
	comment, err := service.NewCommentService(ctx).AddComment(pack.Actor(c), param.VideoID, param.Content)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.Created(c, "Comment added successfully", comment)
}

func UpdateComment(ctx context.Context, c *app.RequestContext) {
	var param UpdateCommentParam
	if err := c.BindAndValidate(&param); err != nil {
		pack.SendResponse(c, pack.BindErr(err), nil)
		return
	}
	comment, err := service.NewCommentService(ctx).UpdateComment(pack.Actor(c), param.CommentID, param.Content)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.Success(c, "Comment updated successfully", comment)
}

func DeleteComment(ctx context.Context, c *app.RequestContext) {
	var param CommentIDParam
	if err := c.BindAndValidate(&param); err != nil {
		pack.SendResponse(c, pack.BindErr(err), nil)
		return
	}
	if err := service.NewCommentService(ctx).DeleteComment(pack.Actor(c), param.CommentID); err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.Success(c, "Comment deleted successfully", map[string]string{"commentId": param.CommentID})
}
