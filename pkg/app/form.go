package app

import (
	"strings"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	val "github.com/go-playground/validator/v10"
)

// ValidError 单条校验错误
type ValidError struct {
	Key     string
	Message string
}

type ValidErrors []*ValidError

func (v *ValidError) Error() string {
	return v.Message
}

func (v ValidErrors) Error() string {
	return strings.Join(v.Errors(), ",")
}

// Errors 返回所有错误消息
func (v ValidErrors) Errors() []string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Message)
	}
	return errs
}

// ErrorsToString 返回逗号拼接的错误消息
func (v ValidErrors) ErrorsToString() string {
	return strings.Join(v.Errors(), ",")
}

// MapsToString 返回字段名到错误消息的映射
func (v ValidErrors) MapsToString() map[string]string {
	m := make(map[string]string, len(v))
	for _, err := range v {
		m[err.Key] = err.Message
	}
	return m
}

// BindAndValid binds request parameters and translates validation
// failures with the translator installed by the Lang middleware.
// BindAndValid 绑定请求参数并翻译校验错误
func BindAndValid(c *gin.Context, v any) (bool, ValidErrors) {
	var errs ValidErrors
	if err := c.ShouldBind(v); err != nil {
		verrs, ok := err.(val.ValidationErrors)
		if !ok {
			errs = append(errs, &ValidError{Key: "body", Message: err.Error()})
			return false, errs
		}

		trans, transOK := c.Value("trans").(ut.Translator)
		if !transOK {
			for _, verr := range verrs {
				errs = append(errs, &ValidError{Key: verr.Field(), Message: verr.Error()})
			}
			return false, errs
		}

		for key, value := range verrs.Translate(trans) {
			errs = append(errs, &ValidError{Key: key, Message: value})
		}
		return false, errs
	}

	return true, nil
}
