// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

// ServiceConfig service layer configuration
// ServiceConfig 服务层配置
type ServiceConfig struct {
	App    AppServiceConfig    // App related config // 应用相关配置
	Backup BackupServiceConfig // Backup related config // 备份相关配置
}

// BackupServiceConfig backup service configuration
// BackupServiceConfig 备份服务配置
type BackupServiceConfig struct {
	IsEnable bool   // Whether scheduled backup is enabled // 是否启用定时备份
	Cron     string // Standard 5-field cron spec // 标准五段 cron 表达式
	Keep     int    // Backups to keep, local storage only, 0 keeps all // 保留份数，仅本地存储生效，0 表示全部保留
}

// AppServiceConfig app service configuration
// AppServiceConfig 应用服务配置
type AppServiceConfig struct {
	UploadUrlPath     string   // URL path segment assets resolve under (e.g. content/uploads) // 资源解析使用的 URL 路径段
	UploadMaxSize     int64    // Max upload size in bytes, 0 for unlimited // 最大上传字节数，0 表示不限制
	UploadAllowExts   []string // Allowed upload file extensions, empty for any // 允许的上传扩展名，空表示不限制
	TempPath          string   // Spool directory for streaming uploads // 流式上传的临时落盘目录
	TempRetentionTime string   // Temp file retention before cleanup (e.g., 24h, 7d, 0/empty for no cleanup) // 临时文件保留时间（支持格式：24h、7d，0 或空表示不自动清理）
}
