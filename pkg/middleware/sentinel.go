package middleware

import (
	"context"

	sentinel "github.com/alibaba/sentinel-golang/api"
	"github.com/alibaba/sentinel-golang/core/base"
	"github.com/alibaba/sentinel-golang/core/flow"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

// LoadFlowRule 为resource设置每秒请求上限，超出的请求直接拒绝
func LoadFlowRule(resource string, qps float64) error {
	_, err := flow.LoadRules([]*flow.Rule{
		{
			Resource:               resource,
			TokenCalculateStrategy: flow.Direct,
			ControlBehavior:        flow.Reject,
			Threshold:              qps,
			StatIntervalInMs:       1000,
		},
	})
	if err != nil {
		return errors.Wrap(err, "load sentinel flow rule failed")
	}
	return nil
}

// Sentinel 每个请求作为一次inbound entry，被限流时交给onBlock处理
func Sentinel(resource string, onBlock app.HandlerFunc) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		entry, blockErr := sentinel.Entry(resource, sentinel.WithTrafficType(base.Inbound))
		if blockErr != nil {
			hlog.CtxWarnf(ctx, "request %s %s blocked: %v", c.Method(), c.Path(), blockErr.BlockMsg())
			onBlock(ctx, c)
			c.Abort()
			return
		}
		defer entry.Exit()
		c.Next(ctx)
	}
}
