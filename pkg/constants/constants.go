package constants

import "time"

const (
	ServiceName = "videotube-api"
	APIPrefix   = "/api/v1"

	// IdentityKey JWT载荷中保存用户ID的键，同时也是RequestContext中保存Actor的键
	IdentityKey = "identity"

	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	TweetMaxLength = 100

	DefaultSortBy   = "createdAt"
	DefaultSortType = "desc"

	DefaultViewTTL = 24 * time.Hour
)

// Like target types
const (
	TargetVideo   = "video"
	TargetComment = "comment"
	TargetTweet   = "tweet"
)

// Object storage folders
const (
	FolderVideos     = "videos"
	FolderThumbnails = "thumbnails"
	FolderAvatars    = "avatars"
	FolderCovers     = "covers"
)
