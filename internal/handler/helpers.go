package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/muhammadjayadi/larastore-management/internal/apierror"
	"github.com/muhammadjayadi/larastore-management/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// bindAndValidate binds a JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails — the
// caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON: "+err.Error()))
		return false
	}
	if fields := fieldErrors(req); len(fields) > 0 {
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// bindForm binds multipart form fields. File parts are read separately via
// c.FormFile by the caller.
func bindForm(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBind(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid form data: "+err.Error()))
		return false
	}
	return true
}

// fieldErrors runs validator tags and returns field→constraint pairs,
// lowercasing field names to match the form field spelling.
func fieldErrors(req interface{}) map[string]string {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	fields := make(map[string]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[strings.ToLower(fe.Field())] = fe.Tag()
		}
	}
	return fields
}

// pageParam reads ?page=, defaulting to 1.
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// respondServiceError maps the service sentinel errors onto the HTTP error
// taxonomy: not-found → 404, illegal state transition → 409, slug uniqueness →
// 422 with a field entry, anything else → 500 without leaking internals.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrNotInTrash),
		errors.Is(err, service.ErrPermanentDeleteActive):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, service.ErrSlugTaken):
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(map[string]string{"slug": "unique"}))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("Internal server error"))
	}
}
