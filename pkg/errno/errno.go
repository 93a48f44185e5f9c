package errno

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrCode 与HTTP状态码保持一致，响应体中的status字段即为ErrCode
const (
	SuccessCode         = http.StatusOK
	CreatedCode         = http.StatusCreated
	BadRequestCode      = http.StatusBadRequest
	UnauthorizedCode    = http.StatusUnauthorized
	ForbiddenCode       = http.StatusForbidden
	NotFoundCode        = http.StatusNotFound
	TooManyRequestsCode = http.StatusTooManyRequests
	ServiceErrCode      = http.StatusInternalServerError
)

type ErrNo struct {
	ErrCode int
	ErrMsg  string
	Errors  []string
}

func (e ErrNo) Error() string {
	return fmt.Sprintf("err_code=%d, err_msg=%s", e.ErrCode, e.ErrMsg)
}

func NewErrNo(code int, msg string) ErrNo {
	return ErrNo{ErrCode: code, ErrMsg: msg}
}

// WithMessage 返回一个替换了提示信息的副本
func (e ErrNo) WithMessage(msg string) ErrNo {
	e.ErrMsg = msg
	return e
}

// WithErrors 附带字段级别的错误明细
func (e ErrNo) WithErrors(errs ...string) ErrNo {
	e.Errors = append(append([]string{}, e.Errors...), errs...)
	return e
}

// IsSuccess reports whether the code belongs to the 2xx range.
func (e ErrNo) IsSuccess() bool {
	return e.ErrCode >= 200 && e.ErrCode < 300
}

var (
	Success                = NewErrNo(SuccessCode, "Success")
	Created                = NewErrNo(CreatedCode, "Created")
	RequestErr             = NewErrNo(BadRequestCode, "Invalid request")
	ErrBind                = NewErrNo(BadRequestCode, "Failed to parse request parameters")
	AuthorizationFailedErr = NewErrNo(UnauthorizedCode, "Unauthorized request")
	ForbiddenErr           = NewErrNo(ForbiddenCode, "You are not allowed to perform this action")
	NotFoundErr            = NewErrNo(NotFoundCode, "Resource not found")
	RateLimitErr           = NewErrNo(TooManyRequestsCode, "Too many requests")
	ServiceErr             = NewErrNo(ServiceErrCode, "Something went wrong")
	MysqlErr               = NewErrNo(ServiceErrCode, "Database error")
	RedisErr               = NewErrNo(ServiceErrCode, "Cache error")
	OssErr                 = NewErrNo(ServiceErrCode, "File storage error")
	MQErr                  = NewErrNo(ServiceErrCode, "Message queue error")
)

// ConvertErr convert error to Errno
func ConvertErr(err error) ErrNo {
	if err == nil {
		return Success
	}
	Err := ErrNo{}
	if errors.As(err, &Err) {
		return Err
	}
	return ServiceErr
}

// BadRequest 参数校验失败
func BadRequest(msg string) ErrNo {
	return RequestErr.WithMessage(msg)
}

// NotFound 目标资源不存在
func NotFound(msg string) ErrNo {
	return NotFoundErr.WithMessage(msg)
}

// Forbidden 非资源所有者
func Forbidden(msg string) ErrNo {
	return ForbiddenErr.WithMessage(msg)
}
