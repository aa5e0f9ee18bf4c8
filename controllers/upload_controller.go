package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"zatoka-backend/services"
	"zatoka-backend/utils"
)

type UploadController struct {
	Dir string
}

func NewUploadController(dir string) *UploadController {
	return &UploadController{Dir: dir}
}

// Upload handles POST /api/upload: a multipart form with one or more "files"
// entries. Non-image files are skipped; the response lists the public paths
// of everything that was stored.
func (uc *UploadController) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid multipart form")
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "no files were uploaded")
		return
	}

	paths := make([]string, 0, len(files))
	for _, fh := range files {
		if !services.IsImageUpload(fh) {
			continue
		}
		path, err := services.SaveUploadedImage(fh, uc.Dir)
		if err != nil {
			log.Printf("❌ upload %s: %v", fh.Filename, err)
			continue
		}
		paths = append(paths, path)
	}

	if len(paths) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "no images could be stored")
		return
	}
	c.JSON(http.StatusOK, gin.H{"paths": paths})
}
