package pack

import (
	"mime/multipart"

	"github.com/cloudwego/hertz/pkg/app"

	"videotube.com/pkg/constants"
	"videotube.com/pkg/errno"
)

// Actor 认证中间件写入的当前用户ID，未登录时为空串
func Actor(c *app.RequestContext) string {
	return c.GetString(constants.IdentityKey)
}

// BindErr 参数绑定失败统一按400返回
func BindErr(err error) error {
	return errno.ErrBind.WithErrors(err.Error())
}

// FormFile 读取multipart中的文件，字段不存在时返回nil
func FormFile(c *app.RequestContext, name string) *multipart.FileHeader {
	fh, err := c.FormFile(name)
	if err != nil {
		return nil
	}
	return fh
}
