package model

import "time"

type User struct {
	ID         string    `gorm:"primaryKey;size:36" json:"_id"`
	Username   string    `gorm:"size:64;not null;uniqueIndex" json:"username"`
	Email      string    `gorm:"size:128;not null;uniqueIndex" json:"email"`
	FullName   string    `gorm:"size:128;not null" json:"fullName"`
	Avatar     string    `gorm:"size:512;not null" json:"avatar"`
	CoverImage string    `gorm:"size:512" json:"coverImage"`
	Password   string    `gorm:"size:255;not null" json:"-"` // bcrypt散列，不在JSON中序列化
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// WatchHistory 用户观看记录，按watched_at倒序即为watchHistory列表
type WatchHistory struct {
	UserID    string    `gorm:"primaryKey;size:36" json:"userId"`
	VideoID   string    `gorm:"primaryKey;size:36;index" json:"videoId"`
	WatchedAt time.Time `gorm:"not null;index" json:"watchedAt"`
}

func (WatchHistory) TableName() string {
	return "watch_histories"
}
