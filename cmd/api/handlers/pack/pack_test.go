package pack

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/route"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videotube.com/pkg/errno"
)

func perform(t *testing.T, h app.HandlerFunc) (int, map[string]interface{}) {
	t.Helper()
	e := route.NewEngine(config.NewOptions(nil))
	e.GET("/x", h)
	w := ut.PerformRequest(e, http.MethodGet, "/x", nil)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestSendResponse(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		data    interface{}
		status  int
		message string
		success bool
	}{
		{"nil error", nil, map[string]string{"k": "v"}, 200, "Success", true},
		{"created", errno.Created.WithMessage("made"), "x", 201, "made", true},
		{"bad request", errno.BadRequest("title is required"), nil, 400, "title is required", false},
		{"wrapped not found", pkgerrors.WithMessage(errno.NotFound("Video not found"), "load"), nil, 404, "Video not found", false},
		{"internal detail hidden", pkgerrors.New("dial tcp 10.0.0.1:3306: refused"), nil, 500, errno.ServiceErr.ErrMsg, false},
		{"typed 5xx hidden", errno.OssErr.WithMessage("bucket acl broken"), nil, 500, errno.ServiceErr.ErrMsg, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := perform(t, func(ctx context.Context, c *app.RequestContext) {
				SendResponse(c, tt.err, tt.data)
			})
			assert.Equal(t, tt.status, code)
			assert.EqualValues(t, tt.status, body["status"])
			assert.Equal(t, tt.message, body["message"])
			assert.Equal(t, tt.success, body["success"])
			if tt.success {
				assert.Contains(t, body, "data")
				assert.NotContains(t, body, "errors")
			} else {
				assert.NotContains(t, body, "data")
				assert.Equal(t, []interface{}{}, body["errors"])
			}
		})
	}
}

func TestSendErrorDetails(t *testing.T) {
	_, body := perform(t, func(ctx context.Context, c *app.RequestContext) {
		SendResponse(c, errno.BadRequest("Invalid videoId").WithErrors("videoId must be a valid id"), nil)
	})
	assert.Equal(t, []interface{}{"videoId must be a valid id"}, body["errors"])
}
