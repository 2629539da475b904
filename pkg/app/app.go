package app

import (
	"strings"

	"github.com/kiyensi/store-settings-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// VersionInfo version information // 版本信息
type VersionInfo struct {
	Version   string `json:"version"`
	GitTag    string `json:"gitTag"`
	BuildTime string `json:"buildTime"`
}

// CheckVersionInfo 新版本检查结果
type CheckVersionInfo struct {
	VersionIsNew   bool   `json:"versionIsNew"`
	VersionNewName string `json:"versionNewName"`
	VersionNewLink string `json:"versionNewLink"`
}

type Response struct {
	Ctx *gin.Context
}

// Res is the unified response structure: Code/Status/Msg/Data
// Optional fields use omitempty and stay off the wire when unset.
// Res 是统一的响应结构：Code/Status/Msg/Data
type Res struct {
	Code    int         `json:"code"`
	Status  bool        `json:"status"`
	Message interface{} `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Details interface{} `json:"details,omitempty"`
	Context interface{} `json:"context,omitempty"`
}

func NewResponse(ctx *gin.Context) *Response {
	return &Response{
		Ctx: ctx,
	}
}

// GetRequestIP 获取请求来源 IP
func GetRequestIP(c *gin.Context) string {
	reqIP := c.ClientIP()
	if reqIP == "::1" {
		reqIP = "127.0.0.1"
	}
	return reqIP
}

// GetAccessHost 获取请求访问的协议与主机
func GetAccessHost(c *gin.Context) string {
	accessProto := ""
	if proto := c.Request.Header.Get("X-Forwarded-Proto"); proto == "" {
		accessProto = "http://"
	} else {
		accessProto = proto + "://"
	}
	return accessProto + c.Request.Host
}

// ToResponse 输出到浏览器：统一使用 Res，根据情况设置 Details 与 Context
func (r *Response) ToResponse(codeObj *code.Code) {
	r.Ctx.Set("status_code", codeObj.StatusCode())

	content := Res{
		Code:    codeObj.Code(),
		Status:  codeObj.Status(),
		Message: codeObj.Lang.GetMessage(),
		Data:    codeObj.Data(),
	}

	if codeObj.HaveDetails() {
		content.Details = strings.Join(codeObj.Details(), ",")
	}

	if codeObj.HaveContext() {
		content.Context = codeObj.Context()
	}

	r.send(codeObj.StatusCode(), content)
}

func (r *Response) send(statusCode int, content interface{}) {
	r.Ctx.JSON(statusCode, content)
}
