package validator

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	val "github.com/go-playground/validator/v10"
	"golang.org/x/mod/semver"
)

// CustomValidator 实现 gin binding.StructValidator，替换默认校验引擎
type CustomValidator struct {
	once     sync.Once
	validate *val.Validate
}

func NewCustomValidator() *CustomValidator {
	return &CustomValidator{}
}

func (v *CustomValidator) lazyInit() {
	v.once.Do(func() {
		v.validate = val.New()
		v.validate.SetTagName("binding")
	})
}

// ValidateStruct 校验结构体，指针与切片递归处理，其余类型直接放行
func (v *CustomValidator) ValidateStruct(obj any) error {
	if obj == nil {
		return nil
	}
	value := reflect.ValueOf(obj)
	switch value.Kind() {
	case reflect.Ptr:
		if value.IsNil() {
			return nil
		}
		return v.ValidateStruct(value.Elem().Interface())
	case reflect.Struct:
		v.lazyInit()
		return v.validate.Struct(obj)
	case reflect.Slice, reflect.Array:
		for i := 0; i < value.Len(); i++ {
			if err := v.ValidateStruct(value.Index(i).Interface()); err != nil {
				return err
			}
		}
		return nil
	default:
		return nil
	}
}

// Engine 返回底层 validator 实例
func (v *CustomValidator) Engine() any {
	v.lazyInit()
	return v.validate
}

// RegisterCustom registers project-specific validation rules on the
// active binding engine. Must be called after binding.Validator is set.
// RegisterCustom 注册自定义校验规则
func RegisterCustom() {
	validate, ok := binding.Validator.Engine().(*val.Validate)
	if !ok {
		return
	}

	// semver: 校验形如 1.2.3 或 v1.2.3 的版本号
	_ = validate.RegisterValidation("semver", func(fl val.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		if !strings.HasPrefix(s, "v") {
			s = "v" + s
		}
		return semver.IsValid(s)
	})
}
