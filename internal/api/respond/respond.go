// Package respond 統一的 API 錯誤響應
package respond

import (
	"recipe-suggester/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
)

// debugKey 在 gin.Context 中標記是否回傳錯誤細節
const debugKey = "debug_errors"

// EnableDebug 讓之後的錯誤響應附上原始錯誤
func EnableDebug(debug bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(debugKey, debug)
		c.Next()
	}
}

// Error 以 CustomError 的狀態碼與代碼中止請求
func Error(c *gin.Context, err error) {
	ce := common.AsCustomError(err)
	if ce.Err != nil {
		_ = c.Error(ce.Err)
	}
	c.AbortWithStatusJSON(ce.Status, ce.Response(requestid.Get(c), c.GetBool(debugKey)))
}
