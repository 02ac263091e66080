package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// List never renders a nil slice as null.
func List[T any](c *gin.Context, data []T) {
	if data == nil {
		data = []T{}
	}
	c.JSON(http.StatusOK, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}

// Redirect answers a mutation with the page the client should show next.
func Redirect(c *gin.Context, status int, body gin.H, to string) {
	if body == nil {
		body = gin.H{}
	}
	body["redirect"] = to
	c.JSON(status, body)
}
