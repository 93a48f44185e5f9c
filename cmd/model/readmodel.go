package model

import (
	"time"

	"videotube.com/pkg/pipeline"
)

// 以下为读模型：多表关联、派生字段后返回给调用方的结构，与存储结构区分开

// OwnerSummary 关联用户的摘要投影，只包含公开字段
type OwnerSummary struct {
	ID       string `gorm:"column:id" json:"_id"`
	Username string `gorm:"column:username" json:"username"`
	FullName string `gorm:"column:full_name" json:"fullName"`
	Avatar   string `gorm:"column:avatar" json:"avatar"`
}

type VideoListItem struct {
	ID          string       `gorm:"column:id" json:"_id"`
	VideoFile   string       `gorm:"column:video_file" json:"videoFile"`
	Thumbnail   string       `gorm:"column:thumbnail" json:"thumbnail"`
	Title       string       `gorm:"column:title" json:"title"`
	Description string       `gorm:"column:description" json:"description"`
	Duration    float64      `gorm:"column:duration" json:"duration"`
	Views       int64        `gorm:"column:views" json:"views"`
	IsPublished bool         `gorm:"column:is_published" json:"isPublished"`
	CreatedAt   time.Time    `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt   time.Time    `gorm:"column:updated_at" json:"updatedAt"`
	Owner       OwnerSummary `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`
}

type VideoDetail struct {
	ID               string       `gorm:"column:id" json:"_id"`
	Title            string       `gorm:"column:title" json:"title"`
	Description      string       `gorm:"column:description" json:"description"`
	Views            int64        `gorm:"column:views" json:"views"`
	Thumbnail        string       `gorm:"column:thumbnail" json:"thumbnail"`
	VideoFile        string       `gorm:"column:video_file" json:"videoFile"`
	Duration         float64      `gorm:"column:duration" json:"duration"`
	IsPublished      bool         `gorm:"column:is_published" json:"isPublished"`
	CreatedAt        time.Time    `gorm:"column:created_at" json:"createdAt"`
	Owner            OwnerSummary `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`
	LikesCount       int64        `gorm:"column:likes_count" json:"likesCount"`
	IsLiked          bool         `gorm:"column:is_liked" json:"isLiked"`
	SubscribersCount int64        `gorm:"column:subscribers_count" json:"subscribersCount"`
	IsSubscribed     bool         `gorm:"column:is_subscribed" json:"isSubscribed"`
}

type CommentItem struct {
	ID         string       `gorm:"column:id" json:"_id"`
	Content    string       `gorm:"column:content" json:"content"`
	CreatedAt  time.Time    `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt  time.Time    `gorm:"column:updated_at" json:"updatedAt"`
	Owner      OwnerSummary `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`
	LikesCount int64        `gorm:"column:likes_count" json:"likesCount"`
	IsLiked    bool         `gorm:"column:is_liked" json:"isLiked"`
}

type TweetItem struct {
	ID         string       `gorm:"column:id" json:"_id"`
	Content    string       `gorm:"column:content" json:"content"`
	CreatedAt  time.Time    `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt  time.Time    `gorm:"column:updated_at" json:"updatedAt"`
	Owner      OwnerSummary `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`
	LikesCount int64        `gorm:"column:likes_count" json:"likesCount"`
	IsLiked    bool         `gorm:"column:is_liked" json:"isLiked"`
}

type LikedVideoItem struct {
	ID          string       `gorm:"column:id" json:"_id"`
	Title       string       `gorm:"column:title" json:"title"`
	Thumbnail   string       `gorm:"column:thumbnail" json:"thumbnail"`
	VideoFile   string       `gorm:"column:video_file" json:"videoFile"`
	Description string       `gorm:"column:description" json:"description"`
	Duration    float64      `gorm:"column:duration" json:"duration"`
	Views       int64        `gorm:"column:views" json:"views"`
	LikedAt     time.Time    `gorm:"column:liked_at" json:"likedAt"`
	Owner       OwnerSummary `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`
}

type WatchHistoryItem struct {
	ID        string       `gorm:"column:id" json:"_id"`
	Title     string       `gorm:"column:title" json:"title"`
	Thumbnail string       `gorm:"column:thumbnail" json:"thumbnail"`
	VideoFile string       `gorm:"column:video_file" json:"videoFile"`
	Duration  float64      `gorm:"column:duration" json:"duration"`
	Views     int64        `gorm:"column:views" json:"views"`
	WatchedAt time.Time    `gorm:"column:watched_at" json:"watchedAt"`
	Owner     OwnerSummary `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`
}

// SubscriberItem 频道的订阅者
type SubscriberItem struct {
	ID           string    `gorm:"column:id" json:"_id"`
	Username     string    `gorm:"column:username" json:"username"`
	FullName     string    `gorm:"column:full_name" json:"fullName"`
	Avatar       string    `gorm:"column:avatar" json:"avatar"`
	SubscribedAt time.Time `gorm:"column:subscribed_at" json:"subscribedAt"`
}

// ChannelItem 用户订阅的频道
type ChannelItem struct {
	ID               string    `gorm:"column:id" json:"_id"`
	Username         string    `gorm:"column:username" json:"username"`
	FullName         string    `gorm:"column:full_name" json:"fullName"`
	Avatar           string    `gorm:"column:avatar" json:"avatar"`
	SubscribersCount int64     `gorm:"column:subscribers_count" json:"subscribersCount"`
	SubscribedAt     time.Time `gorm:"column:subscribed_at" json:"subscribedAt"`
}

type ChannelProfile struct {
	ID                        string `gorm:"column:id" json:"_id"`
	Username                  string `gorm:"column:username" json:"username"`
	FullName                  string `gorm:"column:full_name" json:"fullName"`
	Avatar                    string `gorm:"column:avatar" json:"avatar"`
	CoverImage                string `gorm:"column:cover_image" json:"coverImage"`
	SubscribersCount          int64  `gorm:"column:subscribers_count" json:"subscribersCount"`
	ChannelsSubscribedToCount int64  `gorm:"column:channels_subscribed_to_count" json:"channelsSubscribedToCount"`
	IsSubscribed              bool   `gorm:"column:is_subscribed" json:"isSubscribed"`
}

// PageInfo 分页信息，total 为匹配实体的总数而非当前页的大小
type PageInfo struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

func NewPageInfo(page pipeline.Page, total int64) PageInfo {
	return PageInfo{Total: total, Page: page.Number, Limit: page.Limit, TotalPages: page.TotalPages(total)}
}

type VideoPage struct {
	Videos []*VideoListItem `json:"videos"`
	PageInfo
}

type CommentPage struct {
	Comments []*CommentItem `json:"comments"`
	PageInfo
}

type TweetPage struct {
	Tweets []*TweetItem `json:"tweets"`
	PageInfo
}

type LikedVideoPage struct {
	Videos []*LikedVideoItem `json:"videos"`
	PageInfo
}

type WatchHistoryPage struct {
	History []*WatchHistoryItem `json:"history"`
	PageInfo
}

type SubscriberPage struct {
	Subscribers []*SubscriberItem `json:"subscribers"`
	PageInfo
}

type ChannelPage struct {
	Channels []*ChannelItem `json:"channels"`
	PageInfo
}
