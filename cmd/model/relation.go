package model

import "time"

// Subscription 订阅关系：subscriber 关注 channel，(channel_id, subscriber_id) 唯一
type Subscription struct {
	ID           string    `gorm:"primaryKey;size:36" json:"_id"`
	ChannelID    string    `gorm:"size:36;not null;uniqueIndex:idx_channel_subscriber,priority:1" json:"channel"`
	SubscriberID string    `gorm:"size:36;not null;uniqueIndex:idx_channel_subscriber,priority:2;index" json:"subscriber"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
