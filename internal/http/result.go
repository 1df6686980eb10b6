package httpapi

// Result JSON envelope shared by every page endpoint
// - code: 2000 on success
// - type: 'success' | 'error'
// - message: string
// - result: any
type Result[T any] struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Result  T      `json:"result"`
}

const (
	ResultSuccess = 2000
	ResultError   = -1
	// ResultNotLoggedIn 使用 code=60401 + HTTP 401（前端跳转登录页）
	ResultNotLoggedIn = 60401
)

func Ok[T any](result T) Result[T] {
	return Result[T]{Code: ResultSuccess, Type: "success", Message: "ok", Result: result}
}

func Fail(message string) Result[any] {
	return Result[any]{Code: ResultError, Type: "error", Message: message, Result: nil}
}

func NotLoggedIn() Result[any] {
	return Result[any]{Code: ResultNotLoggedIn, Type: "error", Message: "not logged in", Result: nil}
}
