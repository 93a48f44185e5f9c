package model

import "time"

type Comment struct {
	ID        string    `gorm:"primaryKey;size:36" json:"_id"`
	VideoID   string    `gorm:"size:36;not null;index" json:"video"`
	OwnerID   string    `gorm:"size:36;not null;index" json:"owner"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Comment) TableName() string {
	return "comments"
}

type Tweet struct {
	ID        string    `gorm:"primaryKey;size:36" json:"_id"`
	OwnerID   string    `gorm:"size:36;not null;index" json:"owner"`
	Content   string    `gorm:"size:100;not null" json:"content"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Tweet) TableName() string {
	return "tweets"
}

// Like 点赞记录，(target_type, target_id, liked_by) 唯一
type Like struct {
	ID         string    `gorm:"primaryKey;size:36" json:"_id"`
	TargetType string    `gorm:"size:16;not null;uniqueIndex:idx_like_target_actor,priority:1" json:"targetType"`
	TargetID   string    `gorm:"size:36;not null;uniqueIndex:idx_like_target_actor,priority:2" json:"targetId"`
	LikedBy    string    `gorm:"size:36;not null;uniqueIndex:idx_like_target_actor,priority:3;index" json:"likedBy"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (Like) TableName() string {
	return "likes"
}
