package transport

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"imagechart/internal/entity"
)

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.service.List()
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}

	ok(c, http.StatusOK, categories)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var input entity.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Category name is required")
		return
	}

	category, err := h.service.Create(input)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to create category")
		return
	}

	ok(c, http.StatusOK, category)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id := c.Param("id")

	var upd entity.CategoryUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	category, err := h.service.Update(id, upd)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrEmptyUpdate):
			fail(c, http.StatusBadRequest, "No fields to update")
		case errors.Is(err, entity.ErrCategoryNotFound):
			fail(c, http.StatusNotFound, "Category not found")
		default:
			fail(c, http.StatusInternalServerError, "Failed to update category")
		}
		return
	}

	ok(c, http.StatusOK, category)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.Delete(id); err != nil {
		var inUse *entity.CategoryInUseError
		switch {
		case errors.As(err, &inUse):
			fail(c, http.StatusConflict, inUse.Error())
		case errors.Is(err, entity.ErrCategoryNotFound):
			fail(c, http.StatusNotFound, "Category not found")
		default:
			fail(c, http.StatusInternalServerError, "Failed to delete category")
		}
		return
	}

	ok(c, http.StatusOK, nil)
}
