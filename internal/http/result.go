package httpapi

// Result 统一响应信封
// - code: 2000 成功，-1 失败
// - type: 'success' | 'error' | 'warning'
// - result: 业务数据
type Result[T any] struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Result  T      `json:"result"`
}

const (
	ResultSuccess = 2000
	ResultError   = -1
)

func Ok[T any](result T) Result[T] {
	return Result[T]{Code: ResultSuccess, Type: "success", Message: "ok", Result: result}
}

func Fail(message string) Result[any] {
	return Result[any]{Code: ResultError, Type: "error", Message: message, Result: nil}
}

// Warn 前置条件类提示（非异常）：前端展示提示而不是报错弹窗
func Warn(message string) Result[any] {
	return Result[any]{Code: ResultError, Type: "warning", Message: message, Result: nil}
}
