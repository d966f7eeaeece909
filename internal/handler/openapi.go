package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kube-rca/alert-broadcast/docs"
)

// OpenAPIDoc returns the generated OpenAPI document with host set to the
// host the caller used to reach the service.
func OpenAPIDoc(c *gin.Context) {
	spec := *docs.SwaggerInfo
	spec.Host = c.Request.Host
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(spec.ReadDoc()))
}
