package handler

import (
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kube-rca/alert-broadcast/internal/model"
)

const spaIndex = "index.html"

// SPAHandler - 매칭되는 라우트가 없는 요청에 SPA 번들을 제공
//
// GET/HEAD 요청은 번들에 해당 파일이 있으면 파일을, 없으면 index.html을 200으로 반환합니다.
// 그 외 메서드는 404 JSON을 반환합니다.
type SPAHandler struct {
	fsys       fs.FS
	fileServer http.Handler
	index      []byte
}

func NewSPAHandler(fsys fs.FS) (*SPAHandler, error) {
	index, err := fs.ReadFile(fsys, spaIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to read SPA entry document: %w", err)
	}
	return &SPAHandler{
		fsys:       fsys,
		fileServer: http.FileServer(http.FS(fsys)),
		index:      index,
	}, nil
}

func (h *SPAHandler) Fallback(c *gin.Context) {
	method := c.Request.Method
	if method != http.MethodGet && method != http.MethodHead {
		c.JSON(http.StatusNotFound, model.NewErrorResponse("Not found"))
		return
	}

	// index.html을 FileServer로 넘기면 "/"로 리다이렉트되므로 직접 응답
	name := strings.TrimPrefix(path.Clean("/"+c.Request.URL.Path), "/")
	if name != "" && name != spaIndex {
		if info, err := fs.Stat(h.fsys, name); err == nil && !info.IsDir() {
			h.fileServer.ServeHTTP(c.Writer, c.Request)
			return
		}
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", h.index)
}
