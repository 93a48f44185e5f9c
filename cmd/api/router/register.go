package router

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/route"

	interaction "videotube.com/cmd/api/handlers/interaction"
	"videotube.com/cmd/api/handlers/pack"
	relation "videotube.com/cmd/api/handlers/relation"
	user "videotube.com/cmd/api/handlers/user"
	video "videotube.com/cmd/api/handlers/video"
	"videotube.com/pkg/constants"
)

// Authenticator 认证相关的handler，由authfunc.JWTAuth实现
type Authenticator interface {
	Middleware() []app.HandlerFunc
	LoginHandler() app.HandlerFunc
	LogoutHandler() app.HandlerFunc
	RefreshHandler() app.HandlerFunc
}

func Register(e *route.Engine, auth Authenticator) {
	api := e.Group(constants.APIPrefix)
	api.GET("/healthcheck", func(ctx context.Context, c *app.RequestContext) {
		pack.Success(c, "OK", map[string]string{"status": "ok"})
	})
	authed := auth.Middleware()
	withAuth := func(h app.HandlerFunc) []app.HandlerFunc {
		return append(append(make([]app.HandlerFunc, 0, len(authed)+1), authed...), h)
	}

	users := api.Group("/users")
	users.POST("/register", user.Register)
	users.POST("/login", auth.LoginHandler())
	users.POST("/refresh-token", auth.RefreshHandler())
	users.POST("/logout", withAuth(auth.LogoutHandler())...)
	users.GET("/current-user", withAuth(user.CurrentUser)...)
	users.GET("/c/:username", withAuth(user.ChannelProfile)...)
	users.GET("/history", withAuth(user.WatchHistory)...)

	videos := api.Group("/videos")
	videos.GET("", video.ListVideos)
	videos.POST("", withAuth(video.PublishVideo)...)
	videos.GET("/:videoId", withAuth(video.GetVideo)...)
	videos.PATCH("/:videoId", withAuth(video.UpdateVideo)...)
	videos.DELETE("/:videoId", withAuth(video.DeleteVideo)...)
	videos.PATCH("/:videoId/toggle", withAuth(video.TogglePublish)...)

	comments := api.Group("/comments", authed...)
	comments.GET("/:videoId", interaction.ListComments)
	comments.POST("/:videoId", interaction.AddComment)
	comments.PATCH("/c/:commentId", interaction.UpdateComment)
	comments.DELETE("/c/:commentId", interaction.DeleteComment)

	tweets := api.Group("/tweets", authed...)
	tweets.POST("", interaction.CreateTweet)
	tweets.GET("/user/:userId", interaction.ListUserTweets)
	tweets.PATCH("/:tweetId", interaction.UpdateTweet)
	tweets.DELETE("/:tweetId", interaction.DeleteTweet)

	likes := api.Group("/likes", authed...)
	likes.POST("/video/:videoId", interaction.ToggleVideoLike)
	likes.POST("/comment/:commentId", interaction.ToggleCommentLike)
	likes.POST("/tweet/:tweetId", interaction.ToggleTweetLike)
	likes.GET("/videos", interaction.ListLikedVideos)

	subscriptions := api.Group("/subscriptions", authed...)
	subscriptions.POST("/c/:channelId", relation.ToggleSubscription)
	subscriptions.GET("/c/:channelId", relation.ListSubscribers)
	subscriptions.GET("/u/:subscriberId", relation.ListSubscribedChannels)
}
