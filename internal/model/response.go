package model

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PageResponse 分页响应
type PageResponse struct {
	Total   int64       `json:"total"`
	Page    int         `json:"page"`
	PerPage int         `json:"per_page"`
	Data    interface{} `json:"data"`
}

// 响应码常量
const (
	CodeSuccess      = 200
	CodeBadRequest   = 400
	CodeUnauthorized = 401
	CodeForbidden    = 403
	CodeNotFound     = 404
	CodeServerError  = 500
)

// Success 成功响应
func Success(data interface{}) Response {
	return Response{
		Code:    CodeSuccess,
		Message: "success",
		Data:    data,
	}
}

// SuccessWithMessage 成功响应(自定义消息)
func SuccessWithMessage(message string, data interface{}) Response {
	return Response{
		Code:    CodeSuccess,
		Message: message,
		Data:    data,
	}
}

// BadRequest 400错误
func BadRequest(message string) Response {
	return Response{
		Code:    CodeBadRequest,
		Message: message,
	}
}

// Unauthorized 401错误
func Unauthorized(message string) Response {
	return Response{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

// Forbidden 403错误
func Forbidden(message string) Response {
	return Response{
		Code:    CodeForbidden,
		Message: message,
	}
}

// NotFound 404错误
func NotFound(message string) Response {
	return Response{
		Code:    CodeNotFound,
		Message: message,
	}
}

// ServerError 500错误
func ServerError(message string) Response {
	return Response{
		Code:    CodeServerError,
		Message: message,
	}
}

// PageData 分页数据响应
func PageData(total int64, page, perPage int, data interface{}) Response {
	return Response{
		Code:    CodeSuccess,
		Message: "success",
		Data: PageResponse{
			Total:   total,
			Page:    page,
			PerPage: perPage,
			Data:    data,
		},
	}
}
