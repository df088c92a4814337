package transport

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"imagechart/internal/entity"
)

func (h *ImageHandler) ListImages(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	list, err := h.service.List(entity.ListQuery{
		Page:     page,
		Limit:    limit,
		Category: c.Query("category"),
		Search:   c.Query("search"),
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch images")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       list.Items,
		"pagination": list.Pagination,
	})
}

// UploadImages accepts a multipart batch: every file in "images" is
// index-aligned with the "descriptions", "themes" and "category_ids"
// form values.
func (h *ImageHandler) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	fileHeaders := form.File["images"]
	if len(fileHeaders) == 0 {
		fail(c, http.StatusBadRequest, "No files uploaded")
		return
	}

	descriptions := form.Value["descriptions"]
	themes := form.Value["themes"]
	categoryIDs := form.Value["category_ids"]

	at := func(values []string, i int) string {
		if i < len(values) {
			return values[i]
		}
		return ""
	}

	files := make([]entity.IncomingFile, 0, len(fileHeaders))
	openFiles := make([]interface{ Close() error }, 0, len(fileHeaders))
	defer func() {
		for _, f := range openFiles {
			f.Close()
		}
	}()

	for i, header := range fileHeaders {
		mimeType := header.Header.Get("Content-Type")
		if !strings.HasPrefix(mimeType, "image/") || header.Size == 0 {
			fail(c, http.StatusBadRequest, fmt.Sprintf("File %q is not a valid image", header.Filename))
			return
		}

		src, err := header.Open()
		if err != nil {
			fail(c, http.StatusInternalServerError, "Failed to read uploaded file")
			return
		}
		openFiles = append(openFiles, src)

		files = append(files, entity.IncomingFile{
			Name:        header.Filename,
			MimeType:    mimeType,
			Size:        header.Size,
			Reader:      src,
			Description: at(descriptions, i),
			Theme:       at(themes, i),
			CategoryID:  at(categoryIDs, i),
		})
	}

	created, err := h.service.UploadBatch(files)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Upload failed")
		return
	}

	ok(c, http.StatusOK, created)
}

func (h *ImageHandler) UpdateImage(c *gin.Context) {
	id := c.Param("id")

	var upd entity.ImageUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.Update(id, upd); err != nil {
		switch {
		case errors.Is(err, entity.ErrEmptyUpdate):
			fail(c, http.StatusBadRequest, "No fields to update")
		case errors.Is(err, entity.ErrImageNotFound):
			fail(c, http.StatusNotFound, "Image not found")
		default:
			fail(c, http.StatusInternalServerError, "Failed to update image")
		}
		return
	}

	ok(c, http.StatusOK, nil)
}

func (h *ImageHandler) DeleteImage(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, entity.ErrImageNotFound) {
			fail(c, http.StatusNotFound, "Image not found")
			return
		}
		fail(c, http.StatusInternalServerError, "Failed to delete image")
		return
	}

	ok(c, http.StatusOK, nil)
}

func (h *ImageHandler) GetImageFile(c *gin.Context) {
	h.serveFile(c, false)
}

func (h *ImageHandler) DownloadImage(c *gin.Context) {
	h.serveFile(c, true)
}

func (h *ImageHandler) serveFile(c *gin.Context, attachment bool) {
	id := c.Param("id")

	reader, image, err := h.service.GetFile(id)
	if err != nil {
		if errors.Is(err, entity.ErrImageNotFound) {
			fail(c, http.StatusNotFound, "Image not found")
			return
		}
		fail(c, http.StatusInternalServerError, "Failed to access file")
		return
	}
	defer reader.Close()

	contentType := image.MimeType
	disposition := "inline"
	if attachment {
		contentType = "application/octet-stream"
		disposition = "attachment"
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}

	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, image.OriginalName))
	c.DataFromReader(http.StatusOK, image.FileSize, contentType, reader, nil)
}

func (h *ImageHandler) BulkFetchImages(c *gin.Context) {
	var req entity.BulkFetchRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		fail(c, http.StatusBadRequest, "No image ids provided")
		return
	}

	files, err := h.service.BulkFetch(req.IDs)
	if err != nil {
		if errors.Is(err, entity.ErrImageNotFound) {
			fail(c, http.StatusNotFound, "No images found for the given ids")
			return
		}
		fail(c, http.StatusInternalServerError, "Failed to fetch images")
		return
	}

	ok(c, http.StatusOK, files)
}
