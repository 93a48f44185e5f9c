package main

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"videotube.com/pkg/mq"
	"videotube.com/pkg/oss"
)

// cleanupHandler 删除事件中列出的对象，任一失败时返回错误以便重投递
type cleanupHandler struct {
	storage oss.ObjectStorage
}

func (h *cleanupHandler) HandleMediaCleanup(ctx context.Context, event *mq.MediaCleanupEvent) error {
	var failed []string
	for _, url := range event.URLs {
		if err := h.storage.Remove(ctx, url); err != nil {
			logrus.WithFields(logrus.Fields{
				"event":  event.EventID,
				"video":  event.VideoID,
				"object": url,
			}).Warnf("remove object failed: %v", err)
			failed = append(failed, url)
		}
	}
	if len(failed) > 0 {
		return errors.Errorf("%d of %d objects not removed: %s", len(failed), len(event.URLs), strings.Join(failed, ", "))
	}
	logrus.WithFields(logrus.Fields{
		"event":  event.EventID,
		"reason": event.Reason,
	}).Infof("removed %d objects", len(event.URLs))
	return nil
}
