package code

import (
	"fmt"
	"net/http"
)

// Code 统一响应码，同时实现 error 接口
type Code struct {
	// 状态码
	code int
	// 状态
	status bool
	// 多语言消息
	Lang lang
	// 数据
	data     interface{}
	haveData bool
	// 错误详细信息
	details     []string
	haveDetails bool
	// 附加上下文
	context     string
	haveContext bool
}

var codes = map[int]string{}

// NewError registers a failure code. Duplicate codes are a programming
// error and panic at init time.
// NewError 注册失败码，重复注册会在初始化时 panic
func NewError(code int, l lang) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("错误码 %d 已经存在，请更换一个", code))
	}
	codes[code] = l.GetMessage()
	return &Code{code: code, status: false, Lang: l}
}

var sussCodes = map[int]string{}

// NewSuss 注册成功码
func NewSuss(code int, l lang) *Code {
	if _, ok := sussCodes[code]; ok {
		panic(fmt.Sprintf("成功码 %d 已经存在，请更换一个", code))
	}
	sussCodes[code] = l.GetMessage()
	return &Code{code: code, status: true, Lang: l}
}

func (e *Code) Reset() *Code {
	e.data = nil
	e.haveData = false
	e.details = []string{}
	e.haveDetails = false
	e.context = ""
	e.haveContext = false
	return e
}

// Clone 创建一个不携带附加数据的 Code 副本
func (e *Code) Clone() *Code {
	return &Code{
		code:   e.code,
		status: e.status,
		Lang:   e.Lang,
	}
}

func (e *Code) Error() string {
	return e.Msg()
}

func (e *Code) Code() int {
	return e.code
}

func (e *Code) Status() bool {
	return e.status
}

func (e *Code) Msg() string {
	return e.Lang.GetMessage()
}

func (e *Code) Details() []string {
	return e.details
}

func (e *Code) Data() interface{} {
	return e.data
}

func (e *Code) Context() string {
	return e.context
}

func (e *Code) HaveDetails() bool {
	return e.haveDetails
}

func (e *Code) HaveData() bool {
	return e.haveData
}

func (e *Code) HaveContext() bool {
	return e.haveContext
}

func (e *Code) WithData(data interface{}) *Code {
	e.haveData = true
	e.data = data
	return e
}

func (e *Code) WithDetails(details ...string) *Code {
	e.haveDetails = true
	e.details = append([]string{}, details...)
	return e
}

func (e *Code) WithContext(context string) *Code {
	e.haveContext = true
	e.context = context
	return e
}

// StatusCode HTTP 层始终返回 200，业务状态由响应体的 code 表达
func (e *Code) StatusCode() int {
	return http.StatusOK
}
