package mq

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	MediaCleanupExchange = "media_cleanup"
	MediaCleanupQueue    = "media_cleanup"
)

// MediaCleanupEvent 视频删除或缩略图替换后需要删除的对象存储文件
type MediaCleanupEvent struct {
	EventID   string    `json:"event_id"`
	VideoID   string    `json:"video_id"`
	URLs      []string  `json:"urls"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

// 清理原因
const (
	ReasonVideoDeleted     = "video_deleted"
	ReasonThumbnailReplace = "thumbnail_replaced"
	ReasonUploadAborted    = "upload_aborted"
)

func decodeMediaCleanup(body []byte) (*MediaCleanupEvent, error) {
	var event MediaCleanupEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal media cleanup event: %w", err)
	}
	if len(event.URLs) == 0 {
		return nil, fmt.Errorf("media cleanup event %s carries no urls", event.EventID)
	}
	return &event, nil
}
