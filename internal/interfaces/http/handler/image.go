package handler

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// allowedImageExtensions is the whitelist for served image files
var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ImageHandler serves previously stored product images
type ImageHandler struct {
	BaseHandler
	dir string
}

// NewImageHandler creates an ImageHandler serving files from dir
func NewImageHandler(dir string) *ImageHandler {
	return &ImageHandler{dir: dir}
}

// Serve returns a stored image. Filenames with path separators or traversal
// sequences are rejected outright, extensions are whitelisted, and hits get
// a long-lived cache header since stored files never change in place.
func (h *ImageHandler) Serve(c *gin.Context) {
	name := c.Param("filename")
	if name == "" ||
		strings.ContainsAny(name, "/\\") ||
		strings.Contains(name, "..") {
		h.BadRequest(c, "Nombre de archivo inválido")
		return
	}
	if !allowedImageExtensions[strings.ToLower(filepath.Ext(name))] {
		h.BadRequest(c, "Tipo de archivo no permitido")
		return
	}

	path := filepath.Join(h.dir, name)
	if _, err := os.Stat(path); err != nil {
		h.NotFound(c, "Imagen no encontrada")
		return
	}

	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.File(path)
}
