package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/EduOpsSolutions/EduOps-sub001/internal/recurrence"
)

// 自定义校验标签
const (
	dayPatternTag = "daypattern"
	clockTag      = "clock"
	isoDateTag    = "isodate"
)

var messages = map[string]string{
	"required":    "不能为空",
	"uuid":        "必须为合法的 UUID",
	"min":         "小于允许的最小值",
	"max":         "超过允许的最大值",
	"oneof":       "取值不在允许范围内",
	dayPatternTag: "星期规则无效，应为 SU,M,T,W,TH,F,S 的逗号分隔组合",
	clockTag:      "时间格式应为 HH:MM",
	isoDateTag:    "日期格式应为 YYYY-MM-DD",
}

// RegisterGin 在 gin 默认校验引擎上注册自定义标签
func RegisterGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin 校验引擎不是 validator/v10")
	}
	return Register(v)
}

// Register 注册自定义标签，并以 json/form 标签名作为错误字段名
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, key := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	rules := map[string]validator.Func{
		dayPatternTag: validDayPattern,
		clockTag:      validClock,
		isoDateTag:    validISODate,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("注册校验标签 %s 失败: %w", tag, err)
		}
	}
	return nil
}

func validDayPattern(fl validator.FieldLevel) bool {
	p, err := recurrence.ParseDayPattern(fl.Field().String())
	return err == nil && !p.IsEmpty()
}

func validClock(fl validator.FieldLevel) bool {
	_, err := recurrence.ParseClock(fl.Field().String())
	return err == nil
}

func validISODate(fl validator.FieldLevel) bool {
	_, err := recurrence.ParseDate(fl.Field().String())
	return err == nil
}

// FieldErrors 将绑定错误转为 字段名→提示 的映射；非校验错误返回 nil
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.Tag()]
		if !ok {
			msg = "校验失败: " + fe.Tag()
		}
		out[fe.Field()] = msg
	}
	return out
}
