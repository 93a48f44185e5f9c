package pack

import (
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"

	"videotube.com/pkg/errno"
)

type Response struct {
	Status  int         `json:"status"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
	Success bool        `json:"success"`
}

type ErrorResponse struct {
	Status  int      `json:"status"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
	Success bool     `json:"success"`
}

// SendResponse pack response，err为nil时按200返回
func SendResponse(c *app.RequestContext, err error, data interface{}) {
	if err == nil {
		Success(c, errno.Success.ErrMsg, data)
		return
	}
	Err := errno.ConvertErr(err)
	if Err.IsSuccess() {
		send(c, Err.ErrCode, Err.ErrMsg, data)
		return
	}
	if Err.ErrCode >= errno.ServiceErrCode {
		// 5xx只记录原始错误，对外统一返回通用提示
		hlog.Errorf("%s %s failed: %+v", c.Method(), c.Path(), err)
		Err = errno.ServiceErr
	}
	SendError(c, Err)
}

// Success 200
func Success(c *app.RequestContext, msg string, data interface{}) {
	send(c, errno.SuccessCode, msg, data)
}

// Created 201
func Created(c *app.RequestContext, msg string, data interface{}) {
	send(c, errno.CreatedCode, msg, data)
}

// SendError 写出错误信封并终止后续handler
func SendError(c *app.RequestContext, e errno.ErrNo) {
	errs := e.Errors
	if errs == nil {
		errs = []string{}
	}
	c.AbortWithStatusJSON(e.ErrCode, ErrorResponse{
		Status:  e.ErrCode,
		Message: e.ErrMsg,
		Errors:  errs,
		Success: false,
	})
}

func send(c *app.RequestContext, code int, msg string, data interface{}) {
	c.JSON(code, Response{
		Status:  code,
		Data:    data,
		Message: msg,
		Success: true,
	})
}
