package code

// 成功码
var (
	Success = NewSuss(0, lang{
		en:    "Success",
		zh_cn: "成功",
	})
)

// 通用错误码
var (
	Failed = NewError(1, lang{
		en:    "Failed",
		zh_cn: "失败",
	})
	ErrorServerInternal = NewError(10000, lang{
		en:    "Internal server error",
		zh_cn: "服务器内部错误",
	})
	ErrorInvalidParams = NewError(10001, lang{
		en:    "Invalid request parameters",
		zh_cn: "请求参数错误",
	})
	ErrorNotFoundAPI = NewError(10002, lang{
		en:    "API not found",
		zh_cn: "接口不存在",
	})
	ErrorTooManyRequests = NewError(10003, lang{
		en:    "Too many requests",
		zh_cn: "请求过多",
	})
	ErrorDatabaseOperation = NewError(10004, lang{
		en:    "Database operation failed",
		zh_cn: "数据库操作失败",
	})
	ErrorInvalidStorageType = NewError(10005, lang{
		en:    "Invalid storage type",
		zh_cn: "无效的存储类型",
	})
)

// 店铺设置错误码
var (
	ErrorSettingsValidation = NewError(20001, lang{
		en:    "Settings validation failed",
		zh_cn: "设置校验失败",
	})
	ErrorSettingsUpdateFailed = NewError(20002, lang{
		en:    "Failed to update settings",
		zh_cn: "更新设置失败",
	})
)

// Logo 上传错误码
var (
	ErrorUploadFileMissing = NewError(20101, lang{
		en:    "Required fields are missing",
		zh_cn: "缺少必填字段",
	})
	ErrorUploadFileFailed = NewError(20102, lang{
		en:    "Failed to upload file",
		zh_cn: "文件上传失败",
	})
	ErrorUploadFileTypeNotSupport = NewError(20103, lang{
		en:    "File type is not supported",
		zh_cn: "不支持的文件类型",
	})
	ErrorUploadFileExceedMaxSize = NewError(20104, lang{
		en:    "File exceeds the maximum allowed size",
		zh_cn: "文件超出允许的最大大小",
	})
)
