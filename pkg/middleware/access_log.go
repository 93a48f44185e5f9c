package middleware

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

func AccessLog() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		start := time.Now()
		c.Next(ctx)
		hlog.CtxInfof(ctx, "[%s] %s %d %v %s",
			c.Method(),
			c.Request.URI().PathOriginal(),
			c.Response.StatusCode(),
			time.Since(start),
			c.ClientIP(),
		)
	}
}
