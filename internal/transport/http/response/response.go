package response

// Envelope 所有端点统一的 {success, data|error} 信封；
// error 在校验失败时为消息数组，其余场景为单条字符串
type Envelope struct {
	Success bool `json:"success"`
	Count   *int `json:"count,omitempty"`
	Data    any  `json:"data,omitempty"`
	Error   any  `json:"error,omitempty"`
}

// OK 成功响应（保证 data 不为 null）
func OK(data any) Envelope {
	if data == nil {
		data = struct{}{}
	}
	return Envelope{Success: true, Data: data}
}

// List 列表响应，带 count
func List(count int, data any) Envelope {
	return Envelope{Success: true, Count: &count, Data: data}
}

// Fail 失败响应；err 为 string 或 []string
func Fail(err any) Envelope {
	return Envelope{Success: false, Error: err}
}
