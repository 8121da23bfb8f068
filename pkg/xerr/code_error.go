package xerr

import "fmt"

// CodeError 自定义错误结构
type CodeError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error 实现 error 接口
func (e *CodeError) Error() string {
	return fmt.Sprintf("Code: %d, Message: %s", e.Code, e.Message)
}

// New 创建新的 CodeError
func New(code int, msg string) *CodeError {
	return &CodeError{Code: code, Message: msg}
}

// 常用通用错误码
const (
	OK                  = 200
	BadRequest          = 400
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
	BadGateway          = 502
)

// 常用预定义错误
var (
	ErrSuccess     = New(OK, "Success")
	ErrServerError = New(InternalServerError, "시스템 오류가 발생했습니다. 잠시 후 다시 시도해주세요.")
	ErrParam       = New(BadRequest, "요청 파라미터가 올바르지 않습니다.")

	// 生成失败：传输错误和解析错误统一对外，调用方只知道没有可用结果
	ErrGenerationFailed = New(BadGateway, "손님을 모셔오지 못했습니다. 다시 시도해주세요.")
	ErrReplyFailed      = New(BadGateway, "손님이 잠시 말을 잇지 못했습니다. 다시 시도해주세요.")
)
