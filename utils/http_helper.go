package utils

import (
	"encoding/json"
	"net/http"

	"profile_finder/models"
)

// WriteFormattedJSON 格式化JSON输出，使其更易读
func WriteFormattedJSON(w http.ResponseWriter, data interface{}) {
	WriteFormattedJSONStatus(w, http.StatusOK, data)
}

// WriteFormattedJSONStatus 以指定状态码输出格式化JSON
func WriteFormattedJSONStatus(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "    ") // 使用4个空格缩进
	encoder.Encode(data)
}

// WriteSuccessResponse 写入成功响应
func WriteSuccessResponse(w http.ResponseWriter, data interface{}) {
	WriteFormattedJSON(w, models.NewSuccessResponse(data))
}

// WriteErrorResponse 写入错误响应，HTTP状态码由业务码推导
func WriteErrorResponse(w http.ResponseWriter, code int, data interface{}) {
	WriteFormattedJSONStatus(w, StatusForCode(code), models.NewErrorResponse(code, data))
}

// WriteCustomErrorResponse 写入自定义错误消息的响应
func WriteCustomErrorResponse(w http.ResponseWriter, code int, message string, data interface{}) {
	WriteFormattedJSONStatus(w, StatusForCode(code), models.NewCustomErrorResponse(code, message, data))
}

// StatusForCode 业务码 -> HTTP状态码
func StatusForCode(code int) int {
	switch {
	case code == models.CodeSuccess:
		return http.StatusOK
	case code == models.CodeSearchInProgress:
		return http.StatusConflict
	case code == models.CodeUnknownRecord:
		return http.StatusNotFound
	case code == models.CodeThirdPartyAPIError:
		return http.StatusBadGateway
	case code >= 1000 && code < 2000:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
