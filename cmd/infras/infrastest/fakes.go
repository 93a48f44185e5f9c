// Package infrastest provides in-memory stand-ins for the external
// collaborators in package infras.
package infrastest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"sync"
	"testing"
	"time"

	"videotube.com/cmd/infras"
	"videotube.com/pkg/mq"
	"videotube.com/pkg/oss"
)

// Storage 内存对象存储
type Storage struct {
	mu      sync.Mutex
	Objects map[string]int64
	Removed []string
	FailOn  string // 上传到该目录时返回错误
}

func NewStorage() *Storage {
	return &Storage{Objects: map[string]int64{}}
}

func (s *Storage) Upload(ctx context.Context, folder string, file *multipart.FileHeader) (string, error) {
	if folder == s.FailOn {
		return "", fmt.Errorf("upload to %s failed", folder)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	url := oss.PublicURL("http://storage.test", "videotube", oss.ObjectName(folder, file.Filename))
	s.Objects[url] = file.Size
	return url, nil
}

func (s *Storage) Remove(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Objects[url]; !ok {
		return errors.New("object not found")
	}
	delete(s.Objects, url)
	s.Removed = append(s.Removed, url)
	return nil
}

func (s *Storage) Has(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.Objects[url]
	return ok
}

// Producer 记录投递的事件
type Producer struct {
	mu     sync.Mutex
	Events []*mq.MediaCleanupEvent
}

func (p *Producer) PublishMediaCleanup(ctx context.Context, event *mq.MediaCleanupEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, event)
	return nil
}

func (p *Producer) Close() error { return nil }

// Views 内存播放去重
type Views struct {
	mu   sync.Mutex
	seen map[string]bool
}

func (v *Views) FirstView(ctx context.Context, videoID, userID string) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.seen == nil {
		v.seen = map[string]bool{}
	}
	key := videoID + ":" + userID
	if v.seen[key] {
		return false, nil
	}
	v.seen[key] = true
	return true, nil
}

// Tokens 内存token黑名单
type Tokens struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func (t *Tokens) Revoke(ctx context.Context, token string, expireAt time.Time) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.revoked == nil {
		t.revoked = map[string]time.Time{}
	}
	t.revoked[token] = expireAt
	return nil
}

func (t *Tokens) IsRevoked(ctx context.Context, token string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	exp, ok := t.revoked[token]
	return ok && time.Now().Before(exp), nil
}

// Install 替换infras中的全局依赖，测试结束后恢复
func Install(cleanup func(func()), storage *Storage, producer *Producer, views *Views, tokens *Tokens) {
	saved := struct {
		s oss.ObjectStorage
		p mq.MessageProducer
		v infras.ViewRecorder
		t infras.TokenStore
	}{infras.Storage, infras.Producer, infras.Views, infras.Tokens}

	infras.Storage, infras.Producer, infras.Views, infras.Tokens = nil, nil, nil, nil
	if storage != nil {
		infras.Storage = storage
	}
	if producer != nil {
		infras.Producer = producer
	}
	if views != nil {
		infras.Views = views
	}
	if tokens != nil {
		infras.Tokens = tokens
	}
	cleanup(func() {
		infras.Storage, infras.Producer, infras.Views, infras.Tokens = saved.s, saved.p, saved.v, saved.t
	})
}

// FileHeader 构造一个经过multipart解析的上传文件
func FileHeader(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = part.Write(data); err != nil {
		t.Fatal(err)
	}
	if err = w.Close(); err != nil {
		t.Fatal(err)
	}

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}
