// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

// WebSocketAction WebSocket text message type
// WebSocket 文本消息类型
type WebSocketAction = string

const (
	// Settings related
	// 设置相关

	// SettingsGet requests the current settings view
	// SettingsGet 请求当前设置视图
	SettingsGet WebSocketAction = "SettingsGet"
	// SettingsChanged pushed to all clients after a mutation
	// SettingsChanged 设置变更后推送给所有客户端
	SettingsChanged WebSocketAction = "SettingsChanged"
)
