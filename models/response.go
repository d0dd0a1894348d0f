package models

// 响应码定义
const (
	// 成功
	CodeSuccess = 0

	// 客户端错误 (1000-1999)
	CodeInvalidParams       = 1000 // 无效的参数
	CodeMissingParams       = 1001 // 缺少必要参数
	CodeSearchInProgress    = 1002 // 已有搜索在进行中
	CodeDeepDiveUnavailable = 1003 // 尚不能进入深入查看
	CodeUnknownRecord       = 1004 // 记录不存在

	// 服务端错误 (2000-2999)
	CodeServerError        = 2000 // 服务器内部错误
	CodeSessionStoreError  = 2001 // 会话存储错误
	CodeThirdPartyAPIError = 2005 // 第三方API错误
)

// 错误码对应的消息
var CodeMessages = map[int]string{
	CodeSuccess:             "success",
	CodeInvalidParams:       "invalid parameters",
	CodeMissingParams:       "Missing Information",
	CodeSearchInProgress:    "a search is already in progress",
	CodeDeepDiveUnavailable: "deep dive is not available yet",
	CodeUnknownRecord:       "unknown record",
	CodeServerError:         "internal server error",
	CodeSessionStoreError:   "session store error",
	CodeThirdPartyAPIError:  "Failed to search profiles. Please try again.",
}

// NewSuccessResponse 创建成功响应
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Code:    CodeSuccess,
		Message: CodeMessages[CodeSuccess],
		Data:    data,
	}
}

// NewErrorResponse 创建错误响应
func NewErrorResponse(code int, data interface{}) APIResponse {
	message, exists := CodeMessages[code]
	if !exists {
		message = "unknown error"
	}
	return APIResponse{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// NewCustomErrorResponse 创建自定义错误消息的响应
func NewCustomErrorResponse(code int, message string, data interface{}) APIResponse {
	return APIResponse{
		Code:    code,
		Message: message,
		Data:    data,
	}
}
