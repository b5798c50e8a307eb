package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/muhammadjayadi/larastore-management/internal/apierror"
	"github.com/muhammadjayadi/larastore-management/internal/dto"
	"github.com/muhammadjayadi/larastore-management/internal/middleware"
	"github.com/muhammadjayadi/larastore-management/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const searchCacheTTL = 5 * time.Minute

// CategoriesHandler serves the category back office. The live-search endpoint
// keeps a short-lived Redis cache; results may lag mutations by up to the TTL.
type CategoriesHandler struct {
	svc service.CategoryService
	rdb *redis.Client
}

func NewCategoriesHandler(svc service.CategoryService, rdb *redis.Client) *CategoriesHandler {
	return &CategoriesHandler{svc: svc, rdb: rdb}
}

// List godoc
// @Summary List non-deleted categories, page size 10
// @Tags categories
// @Produce json
// @Param keyword query string false "Filter: name contains keyword"
// @Param page query int false "Page number"
// @Success 200 {object} dto.CategoryPage
// @Router /v1/categories [get]
func (h *CategoriesHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context(), c.Query("keyword"), pageParam(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary Create a category (multipart: name, image)
// @Tags categories
// @Accept mpfd
// @Produce json
// @Success 201 {object} dto.CategoryStatusResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/categories [post]
func (h *CategoriesHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !bindForm(c, &req) {
		return
	}
	image, _ := c.FormFile("image")

	fields := fieldErrors(&req)
	if image == nil {
		if fields == nil {
			fields = make(map[string]string)
		}
		fields["image"] = "required"
	}
	if len(fields) > 0 {
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), middleware.ActorID(c), req, image)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CategoryStatusResponse{
		Detail:   "Category successfully created",
		Category: resp,
	})
}

// Show godoc
// @Summary Get a category by id (excludes trashed)
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} dto.CategoryResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/categories/{id} [get]
func (h *CategoriesHandler) Show(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Edit feeds the pre-filled edit form; fetch semantics identical to Show.
func (h *CategoriesHandler) Edit(c *gin.Context) {
	h.Show(c)
}

// Update godoc
// @Summary Update a category (multipart: name, slug, image)
// @Tags categories
// @Accept mpfd
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} dto.CategoryStatusResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/categories/{id} [put]
func (h *CategoriesHandler) Update(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	var req dto.UpdateCategoryRequest
	if !bindForm(c, &req) {
		return
	}
	image, _ := c.FormFile("image")

	fields := fieldErrors(&req)
	if image == nil {
		if fields == nil {
			fields = make(map[string]string)
		}
		fields["image"] = "required"
	}
	if len(fields) > 0 {
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return
	}

	resp, err := h.svc.Update(c.Request.Context(), middleware.ActorID(c), id, req, image)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CategoryStatusResponse{
		Detail:   "Category successfully updated",
		Category: resp,
	})
}

// Destroy soft-deletes: the category moves to the trash and stays recoverable.
func (h *CategoriesHandler) Destroy(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	if err := h.svc.Destroy(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CategoryStatusResponse{Detail: "Category moved to trash"})
}

// Trash godoc
// @Summary List only trashed categories, page size 10
// @Tags categories
// @Produce json
// @Param page query int false "Page number"
// @Success 200 {object} dto.CategoryPage
// @Router /v1/categories/trash [get]
func (h *CategoriesHandler) Trash(c *gin.Context) {
	resp, err := h.svc.Trash(c.Request.Context(), pageParam(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Restore clears the soft-delete marker; restoring a category that is not in
// the trash is answered with a status message and no mutation.
func (h *CategoriesHandler) Restore(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	if err := h.svc.Restore(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CategoryStatusResponse{Detail: "Category successfully restored"})
}

// DeletePermanent removes a trashed category for good. An active category is
// refused with a status message and no mutation.
func (h *CategoriesHandler) DeletePermanent(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	if err := h.svc.DeletePermanent(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CategoryStatusResponse{Detail: "Category deleted permanently"})
}

// Search godoc
// @Summary Live search on category name, unpaginated
// @Tags categories
// @Produce json
// @Param q query string false "Keyword"
// @Success 200 {array} dto.CategoryResponse
// @Router /v1/categories/search [get]
func (h *CategoriesHandler) Search(c *gin.Context) {
	keyword := c.Query("q")
	ctx := c.Request.Context()
	cacheKey := "categories:search:" + keyword

	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp []dto.CategoryResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	resp, err := h.svc.Search(ctx, keyword)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Populate cache — best effort, ignore errors
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, searchCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CategoriesHandler) idParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return uuid.Nil, false
	}
	return id, true
}
