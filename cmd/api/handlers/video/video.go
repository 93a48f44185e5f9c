package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"videotube.com/cmd/api/handlers/pack"
	"videotube.com/cmd/video/service"
)

func ListVideos(ctx context.Context, c *app.RequestContext) {
	var param ListVideosParam
	if err := c.BindAndValidate(&param); err != nil {
		pack.SendResponse(c, pack.BindErr(err), nil)
		return
	}
	resp, err := service.NewVideoService(ctx).ListVideos(&service.ListVideosRequest{
		Page:     param.Page,
		Limit:    param.Limit,
		Query:    param.Query,
		SortBy:   param.SortBy,
		SortType: param.SortType,
		UserID:   param.UserID,
	})
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	msg := "Videos fetched successfully"
	if len(resp.Videos) == 0 {
		msg = "No videos found"
	}
	pack.Success(c, msg, resp)
}

func PublishVideo(ctx context.Context, c *app.RequestContext) {
	var param PublishVideoParam
	if err := c.BindAndValidate(&param); err != nil {
		pack.SendResponse(c, pack.BindErr(err), nil)
		return
	}
	video, err := service.NewVideoService(ctx).PublishVideo(pack.Actor(c), &service.PublishVideoRequest{
		Title:       param.Title,
		Description: param.Description,
		VideoFile:   pack.FormFile(c, "videoFile"),
		Thumbnail:   pack.FormFile(c, "thumbnail"),
	})
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.Created(c, "Video uploaded successfully", video)
}

func GetVideo(ctx context.Context, c *app.RequestContext) {
	var param VideoIDParam
	if err := c.BindAndValidate(&param); err != nil {
		pack.SendResponse(c, pack.BindErr(err), nil)
		return
	}
	detail, err := service.NewVideoService(ctx).GetVideo(pack.Actor(c), param.VideoID)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.Success(c, "Video fetched successfully", detail)
}

func UpdateVideo(ctx context.Context, c *app.RequestContext) {
	var param UpdateVideoParam
	if err := c.BindAndValidate(&param); err != nil {
		pack.SendResponse(c, pack.BindErr(err), nil)
		return
	}
	video, err := service.NewVideoService(ctx).UpdateVideo(pack.Actor(c), param.VideoID, &service.UpdateVideoRequest{
		Title:       param.Title,
		Description: param.Description,
		Thumbnail:   pack.FormFile(c, "thumbnail"),
	})
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.Success(c, "Video updated successfully", video)
}

func DeleteVideo(ctx context.Context, c *app.RequestContext) {
	var param VideoIDParam
	if err := c.BindAndValidate(&param); err != nil {
		pack.SendResponse(c, pack.BindErr(err), nil)
		return
	}
	if err := service.NewVideoService(ctx).DeleteVideo(pack.Actor(c), param.VideoID); err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.Success(c, "Video deleted successfully", map[string]string{"videoId": param.VideoID})
}

func TogglePublish(ctx context.Context, c *app.RequestContext) {
	var param VideoIDParam
	if err := c.BindAndValidate(&param); err != nil {
		pack.SendResponse(c, pack.BindErr(err), nil)
		return
	}
	video, err := service.NewVideoService(ctx).TogglePublish(pack.Actor(c), param.VideoID)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	state := "unpublished"
	if video.IsPublished {
		state = "published"
	}
	pack.Success(c, "Video "+state+" successfully", video)
}
