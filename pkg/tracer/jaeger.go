package tracer

import (
	"io"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/opentracing/opentracing-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"

	"videotube.com/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Init 注册全局tracer，gorm的opentracing插件从GlobalTracer取tracer
// 未启用jaeger时保留默认的NoopTracer
func Init(serviceName string) io.Closer {
	c := config.ConfigInfo.Jaeger
	if !c.Enabled {
		return nopCloser{}
	}
	if c.ServiceName != "" {
		serviceName = c.ServiceName
	}

	cfg := jaegercfg.Configuration{
		ServiceName: serviceName,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  "const",
			Param: 1,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LogSpans:           false,
			LocalAgentHostPort: c.AgentAddr,
		},
	}
	tracer, closer, err := cfg.NewTracer()
	if err != nil {
		hlog.Errorf("init jaeger tracer failed: %v", err)
		return nopCloser{}
	}
	opentracing.SetGlobalTracer(tracer)
	hlog.Infof("jaeger tracer enabled, agent=%s", c.AgentAddr)
	return closer
}
