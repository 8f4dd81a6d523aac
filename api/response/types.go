/*
Package response - API 层统一响应处理

设计原则:
1. HTTP 状态码映射只放在 API 层，领域层与应用层不感知传输协议
2. 错误响应不暴露内部细节，内部错误统一返回 "internal server error"
3. 所有响应携带 RequestID 用于日志追踪
4. 批量校验失败时 ids 给出全部违规标识

响应格式:

	成功: { success: true, data: {...}, message: "...", code: 200, request_id: "..." }
	失败: { success: false, error: "ERROR_CODE", message: "...", ids: [...], code: 4xx/5xx, request_id: "..." }
*/
package response

// RequestIDKey 是 gin context 中保存请求 ID 的键
const RequestIDKey = "request_id"

// Response 统一响应结构
type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"` // 错误码，不是错误详情
	Message   string      `json:"message"`
	IDs       []string    `json:"ids,omitempty"`
	Code      int         `json:"code"` // HTTP 状态码
	RequestID string      `json:"request_id,omitempty"`
}
