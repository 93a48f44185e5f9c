package main

import (
	"context"
	"time"

	sentinel "github.com/alibaba/sentinel-golang/api"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/middlewares/server/recovery"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/hertz-contrib/cors"

	"videotube.com/cmd/api/handlers/pack"
	"videotube.com/cmd/api/router"
	"videotube.com/cmd/api/router/authfunc"
	"videotube.com/cmd/dal/db"
	"videotube.com/cmd/infras"
	"videotube.com/config"
	"videotube.com/pkg/constants"
	"videotube.com/pkg/database"
	"videotube.com/pkg/errno"
	"videotube.com/pkg/middleware"
	"videotube.com/pkg/tracer"
)

func Init() {
	config.Init()
	if err := db.Init(database.FromConfig()); err != nil {
		hlog.Fatalf("init database failed: %v", err)
	}
	infras.Init(context.Background())

	if err := sentinel.InitDefault(); err != nil {
		hlog.Fatalf("init sentinel failed: %v", err)
	}
	if err := middleware.LoadFlowRule(constants.ServiceName, config.ConfigInfo.Sentinel.QPS); err != nil {
		hlog.Fatalf("%v", err)
	}
}

func main() {
	Init()
	defer infras.Close()
	closer := tracer.Init(constants.ServiceName)
	defer closer.Close()

	auth, err := authfunc.New(authfunc.FromConfig())
	if err != nil {
		hlog.Fatalf("%v", err)
	}

	h := server.Default(
		server.WithHostPorts(config.ConfigInfo.Server.Addr),
		server.WithHandleMethodNotAllowed(true),
		server.WithMaxRequestBodySize(config.ConfigInfo.Server.MaxBodySize),
	)

	// 错误处理，panic同样返回统一的错误信封
	h.Use(recovery.Recovery(recovery.WithRecoveryHandler(
		func(ctx context.Context, c *app.RequestContext, err interface{}, stack []byte) {
			hlog.SystemLogger().CtxErrorf(ctx, "[Recovery] err=%v\nstack=%s", err, stack)
			pack.SendError(c, errno.ServiceErr)
		})))

	// 配置 CORS
	h.Use(cors.New(cors.Config{
		AllowOrigins:     config.ConfigInfo.Server.CorsOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	h.Use(middleware.AccessLog())
	h.Use(middleware.Sentinel(constants.ServiceName, func(ctx context.Context, c *app.RequestContext) {
		pack.SendError(c, errno.RateLimitErr)
	}))

	router.Register(h.Engine, auth)
	h.Spin()
}
