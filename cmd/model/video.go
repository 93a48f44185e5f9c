package model

import "time"

type Video struct {
	ID          string    `gorm:"primaryKey;size:36" json:"_id"`
	OwnerID     string    `gorm:"size:36;not null;index" json:"owner"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	VideoFile   string    `gorm:"size:512;not null" json:"videoFile"`
	Thumbnail   string    `gorm:"size:512;not null" json:"thumbnail"`
	Duration    float64   `gorm:"not null" json:"duration"`
	Views       int64     `gorm:"not null" json:"views"`
	IsPublished bool      `gorm:"not null;index" json:"isPublished"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Video) TableName() string {
	return "videos"
}
