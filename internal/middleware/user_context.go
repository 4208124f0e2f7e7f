package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	EditModeKey = "edit_mode"
	editModeCtx = "EditMode"
)

// InjectEditMode кладёт флаг режима редактирования из сессии в контекст.
func InjectEditMode() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		on, _ := sess.Get(EditModeKey).(bool)
		c.Set(editModeCtx, on)
		c.Next()
	}
}

func EditMode(c *gin.Context) bool {
	return c.GetBool(editModeCtx)
}
