package handler

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	phonePattern     = regexp.MustCompile(`^[0-9]{11}$`)
	registerValidate sync.Once
)

// bindingMessages maps "<json field>.<tag>" to the message shown to users.
var bindingMessages = map[string]string{
	"tour_id.required":     "班次不存在",
	"tour_id.gt":           "班次不存在",
	"name.required":        "请填写姓名",
	"phone.required":       "请填写手机号",
	"phone.cnphone":        "手机号格式不正确",
	"date.required":        "请填写出发日期和时间",
	"date.datetime":        "日期格式应为 YYYY-MM-DD",
	"time.required":        "请填写出发日期和时间",
	"time.datetime":        "时间格式应为 HH:MM",
	"destination.required": "请填写目的地",
	"max_seats.min":        "座位数必须大于0",
	"max_seats.max":        "座位数过多",
}

// RegisterValidators installs the custom tags on gin's validator and makes
// field errors report json names.
func RegisterValidators() {
	registerValidate.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		_ = v.RegisterValidation("cnphone", func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(strings.TrimSpace(fl.Field().String()))
		})
	})
}

func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if msg, ok := bindingMessages[fe.Field()+"."+fe.Tag()]; ok {
			return msg
		}
		return "参数无效: " + fe.Field()
	}
	return "请求格式错误"
}
