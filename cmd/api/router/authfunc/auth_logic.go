package authfunc

import (
	"context"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/hertz-contrib/jwt"
	"github.com/pkg/errors"

	"videotube.com/cmd/api/handlers/pack"
	"videotube.com/cmd/infras"
	"videotube.com/cmd/model"
	"videotube.com/cmd/user/service"
	"videotube.com/config"
	"videotube.com/pkg/constants"
	"videotube.com/pkg/errno"
)

const (
	authErrKey   = "auth_error"
	loginUserKey = "login_user"
)

type LoginParam struct {
	Username string `form:"username" json:"username"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

type Options struct {
	Secret     string
	Timeout    time.Duration
	MaxRefresh time.Duration
}

func FromConfig() Options {
	return Options{
		Secret:     config.ConfigInfo.Jwt.Secret,
		Timeout:    config.ConfigInfo.Jwt.Timeout,
		MaxRefresh: config.ConfigInfo.Jwt.MaxRefresh,
	}
}

// JWTAuth 基于hertz-contrib/jwt的登录、刷新、注销与校验，注销的token记录在infras.Tokens
type JWTAuth struct {
	mw         *jwt.HertzJWTMiddleware
	maxRefresh time.Duration
}

func New(opts Options) (*JWTAuth, error) {
	if opts.Secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	a := &JWTAuth{maxRefresh: opts.MaxRefresh}
	mw, err := jwt.New(&jwt.HertzJWTMiddleware{
		Realm:          constants.ServiceName,
		Key:            []byte(opts.Secret),
		Timeout:        opts.Timeout,
		MaxRefresh:     opts.MaxRefresh,
		IdentityKey:    constants.IdentityKey,
		TokenLookup:    "header: Authorization, cookie: jwt",
		TokenHeadName:  "Bearer",
		TimeFunc:       time.Now,
		SendCookie:     true,
		CookieName:     "jwt",
		CookieHTTPOnly: true,

		Authenticator:         authenticate,
		PayloadFunc:           payload,
		IdentityHandler:       identity,
		Unauthorized:          unauthorized,
		LoginResponse:         loginResponse,
		LogoutResponse:        logoutResponse,
		RefreshResponse:       refreshResponse,
		HTTPStatusMessageFunc: statusMessage,
	})
	if err != nil {
		return nil, errors.Wrap(err, "init jwt middleware failed")
	}
	a.mw = mw
	return a, nil
}

// Middleware 校验token并拒绝已注销的token
func (a *JWTAuth) Middleware() []app.HandlerFunc {
	return []app.HandlerFunc{a.mw.MiddlewareFunc(), rejectRevoked}
}

func (a *JWTAuth) LoginHandler() app.HandlerFunc {
	return a.mw.LoginHandler
}

// LogoutHandler 需挂在Middleware之后
func (a *JWTAuth) LogoutHandler() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		if infras.Tokens == nil {
			hlog.CtxWarnf(ctx, "no token store configured, token of %s stays valid until expiry", pack.Actor(c))
		} else if err := infras.Tokens.Revoke(ctx, jwt.GetToken(ctx, c), a.revokeUntil(jwt.ExtractClaims(ctx, c))); err != nil {
			pack.SendResponse(c, errors.Wrap(err, "revoke token failed"), nil)
			return
		}
		a.mw.LogoutHandler(ctx, c)
	}
}

func (a *JWTAuth) RefreshHandler() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		// 过期的token同样会解析出来，由RefreshHandler判断是否仍在MaxRefresh内
		token, _ := a.mw.ParseToken(ctx, c)
		if token != nil && isRevoked(ctx, token.Raw) {
			pack.SendError(c, errno.AuthorizationFailedErr.WithMessage("Token has been revoked"))
			return
		}
		a.mw.RefreshHandler(ctx, c)
	}
}

// revokeUntil 取exp与orig_iat+MaxRefresh中较晚者，刷新窗口内token也不能再被换新
func (a *JWTAuth) revokeUntil(claims jwt.MapClaims) time.Time {
	until := time.Now()
	if exp, ok := claims["exp"].(float64); ok {
		until = time.Unix(int64(exp), 0)
	}
	if origIat, ok := claims["orig_iat"].(float64); ok {
		if refreshEnd := time.Unix(int64(origIat), 0).Add(a.maxRefresh); refreshEnd.After(until) {
			until = refreshEnd
		}
	}
	return until
}

func rejectRevoked(ctx context.Context, c *app.RequestContext) {
	if pack.Actor(c) == "" {
		pack.SendError(c, errno.AuthorizationFailedErr.WithMessage("Invalid access token"))
		return
	}
	if isRevoked(ctx, jwt.GetToken(ctx, c)) {
		pack.SendError(c, errno.AuthorizationFailedErr.WithMessage("Token has been revoked"))
		return
	}
	c.Next(ctx)
}

func isRevoked(ctx context.Context, token string) bool {
	if infras.Tokens == nil || token == "" {
		return false
	}
	revoked, err := infras.Tokens.IsRevoked(ctx, token)
	if err != nil {
		// redis故障时放行，只记录日志
		hlog.CtxWarnf(ctx, "check token revocation failed: %v", err)
		return false
	}
	return revoked
}

func authenticate(ctx context.Context, c *app.RequestContext) (interface{}, error) {
	var param LoginParam
	if err := c.BindAndValidate(&param); err != nil {
		c.Set(authErrKey, pack.BindErr(err))
		return nil, jwt.ErrMissingLoginValues
	}
	login := strings.TrimSpace(param.Username)
	if login == "" {
		login = strings.TrimSpace(param.Email)
	}
	user, err := service.NewUserService(ctx).Login(login, param.Password)
	if err != nil {
		c.Set(authErrKey, err)
		return nil, jwt.ErrFailedAuthentication
	}
	c.Set(loginUserKey, user)
	return user, nil
}

func payload(data interface{}) jwt.MapClaims {
	if user, ok := data.(*model.User); ok {
		return jwt.MapClaims{constants.IdentityKey: user.ID}
	}
	return jwt.MapClaims{}
}

func identity(ctx context.Context, c *app.RequestContext) interface{} {
	id, _ := jwt.ExtractClaims(ctx, c)[constants.IdentityKey].(string)
	return id
}

func statusMessage(e error, ctx context.Context, c *app.RequestContext) string {
	return e.Error()
}

func unauthorized(ctx context.Context, c *app.RequestContext, code int, message string) {
	if v, ok := c.Get(authErrKey); ok {
		if err, ok := v.(error); ok {
			pack.SendResponse(c, err, nil)
			return
		}
	}
	pack.SendError(c, errno.AuthorizationFailedErr.WithMessage(message))
}

func loginResponse(ctx context.Context, c *app.RequestContext, code int, token string, expire time.Time) {
	data := map[string]interface{}{
		"accessToken": token,
		"expire":      expire.Format(time.RFC3339),
	}
	if user, ok := c.Get(loginUserKey); ok {
		data["user"] = user
	}
	pack.Success(c, "User logged in successfully", data)
}

func logoutResponse(ctx context.Context, c *app.RequestContext, code int) {
	pack.Success(c, "User logged out successfully", map[string]interface{}{})
}

func refreshResponse(ctx context.Context, c *app.RequestContext, code int, token string, expire time.Time) {
	pack.Success(c, "Access token refreshed", map[string]interface{}{
		"accessToken": token,
		"expire":      expire.Format(time.RFC3339),
	})
}
