package oss

import (
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectName(t *testing.T) {
	name := ObjectName("videos", "My Clip.MP4")
	assert.True(t, strings.HasPrefix(name, "videos/"))
	assert.True(t, strings.HasSuffix(name, ".mp4"))
	assert.NotEqual(t, name, ObjectName("videos", "My Clip.MP4"))
}

func TestPublicURLRoundTrip(t *testing.T) {
	url := PublicURL("http://localhost:9000/", "videotube", "thumbnails/abc.png")
	assert.Equal(t, "http://localhost:9000/videotube/thumbnails/abc.png", url)

	object, err := ObjectFromURL("http://localhost:9000", "videotube", url)
	require.NoError(t, err)
	assert.Equal(t, "thumbnails/abc.png", object)

	_, err = ObjectFromURL("http://localhost:9000", "videotube", "http://elsewhere/videotube/x.png")
	assert.Error(t, err)
	_, err = ObjectFromURL("http://localhost:9000", "videotube", "http://localhost:9000/videotube/")
	assert.Error(t, err)
}

func TestContentType(t *testing.T) {
	fh := &multipart.FileHeader{Header: textproto.MIMEHeader{}}
	assert.Equal(t, "application/octet-stream", ContentType(fh))
	fh.Header.Set("Content-Type", "image/png")
	assert.Equal(t, "image/png", ContentType(fh))
}
