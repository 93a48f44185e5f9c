package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"videotube.com/cmd/api/handlers/pack"
	"videotube.com/cmd/user/service"
)

func Register(ctx context.Context, c *app.RequestContext) {
	var param RegisterParam
	if err := c.BindAndValidate(&param); err != nil {
		pack.SendResponse(c, pack.BindErr(err), nil)
		return
	}
	user, err := service.NewUserService(ctx).Register(&service.RegisterRequest{
		Username:   param.Username,
		Email:      param.Email,
		FullName:   param.FullName,
		Password:   param.Password,
		Avatar:     pack.FormFile(c, "avatar"),
		CoverImage: pack.FormFile(c, "coverImage"),
	})
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.Created(c, "User registered successfully", user)
}

func CurrentUser(ctx context.Context, c *app.RequestContext) {
	user, err := service.NewUserService(ctx).CurrentUser(pack.Actor(c))
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.Success(c, "Current user fetched successfully", user)
}

func ChannelProfile(ctx context.Context, c *app.RequestContext) {
	var param ChannelParam
	if err := c.BindAndValidate(&param); err != nil {
		pack.SendResponse(c, pack.BindErr(err), nil)
		return
	}
	profile, err := service.NewUserService(ctx).ChannelProfile(pack.Actor(c), param.Username)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.Success(c, "Channel fetched successfully", profile)
}

func WatchHistory(ctx context.Context, c *app.RequestContext) {
	var param PageParam
	if err := c.BindAndValidate(&param); err != nil {
		pack.SendResponse(c, pack.BindErr(err), nil)
		return
	}
	history, err := service.NewUserService(ctx).WatchHistory(pack.Actor(c), param.Page, param.Limit)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.Success(c, "Watch history fetched successfully", history)
}
