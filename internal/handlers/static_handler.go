package handlers

import (
	"io/fs"
	"net/http"
	"path"

	"cardswap/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// StaticHandler отдаёт главную страницу и файлы публичной директории
type StaticHandler struct {
	indexFile  string
	fileServer http.Handler
}

func NewStaticHandler(publicDir, indexFile string) *StaticHandler {
	return &StaticHandler{
		indexFile:  indexFile,
		fileServer: http.FileServer(noListingFS{http.Dir(publicDir)}),
	}
}

func (h *StaticHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.Index)
	r.NoRoute(h.Public)
}

func (h *StaticHandler) Index(c *gin.Context) {
	c.File(h.indexFile)
}

// Public - fallback для всех неизвестных путей
func (h *StaticHandler) Public(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		apperrors.HandleTextError(c, apperrors.NewNotFoundError("Not found"))
		return
	}
	h.fileServer.ServeHTTP(c.Writer, c.Request)
}

// Health - проверка живости процесса
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// noListingFS скрывает каталоги без index.html: вместо листинга будет 404
type noListingFS struct {
	root http.FileSystem
}

func (n noListingFS) Open(name string) (http.File, error) {
	f, err := n.root.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if !info.IsDir() {
		return f, nil
	}

	index, err := n.root.Open(path.Join(name, "index.html"))
	if err != nil {
		f.Close()
		return nil, fs.ErrNotExist
	}
	index.Close()
	return f, nil
}
