package handler

import (
	"net/http"

	"github.com/muhammadjayadi/larastore-management/internal/apierror"
	"github.com/muhammadjayadi/larastore-management/internal/dto"
	"github.com/muhammadjayadi/larastore-management/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UsersHandler serves the user back office. User input carries no field-level
// validation rules; only binding errors reject a request.
type UsersHandler struct {
	svc service.UserService
}

func NewUsersHandler(svc service.UserService) *UsersHandler {
	return &UsersHandler{svc: svc}
}

// List godoc
// @Summary List users, page size 10
// @Tags users
// @Produce json
// @Param keyword query string false "Filter: email contains keyword"
// @Param status query string false "Exact status match; applied only together with keyword"
// @Param page query int false "Page number"
// @Success 200 {object} dto.UserPage
// @Router /v1/users [get]
func (h *UsersHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context(), c.Query("keyword"), c.Query("status"), pageParam(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary Create a user (multipart; optional avatar)
// @Tags users
// @Accept mpfd
// @Produce json
// @Success 201 {object} dto.UserStatusResponse
// @Router /v1/users [post]
func (h *UsersHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindForm(c, &req) {
		return
	}
	avatar, _ := c.FormFile("avatar")

	resp, err := h.svc.Create(c.Request.Context(), req, avatar)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.UserStatusResponse{
		Detail: "User successfully added",
		User:   resp,
	})
}

// Show godoc
// @Summary Get a user by id
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/users/{id} [get]
func (h *UsersHandler) Show(c *gin.Context) {
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
func (h *UsersHandler) Edit(c *gin.Context) {
	h.Show(c)
}

// Update overwrites all listed fields; the password is not changeable here.
func (h *UsersHandler) Update(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if !bindForm(c, &req) {
		return
	}
	avatar, _ := c.FormFile("avatar")

	resp, err := h.svc.Update(c.Request.Context(), id, req, avatar)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserStatusResponse{
		Detail: "User successfully updated",
		User:   resp,
	})
}

// Destroy soft-deletes the user. There is no trash surface for users, so the
// row stays recoverable at the storage layer only.
func (h *UsersHandler) Destroy(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	if err := h.svc.Destroy(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserStatusResponse{Detail: "User successfully deleted"})
}

func (h *UsersHandler) idParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return uuid.Nil, false
	}
	return id, true
}
