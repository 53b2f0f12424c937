package service

import (
	"course_backend/internal/util"

	"github.com/go-playground/validator/v10"
)

// 与 gin 的 ShouldBind 共用 binding 标签，服务层被后台任务直接调用时同样校验
var validate = func() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}()

func validateStruct(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		return util.Invalid(err)
	}
	return nil
}
