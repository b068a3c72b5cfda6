package utils

import (
	"encoding/json"
	"errors"
	"net/http"
)

// MaxBodyBytes JSON 请求体大小上限
const MaxBodyBytes = 64 << 10

// DecodeJSON 解析请求体，失败时直接写出错误响应并返回 false。
// 请求体上限由路由上的 middleware.RequestSize 设置。
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			RespondError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		RespondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
