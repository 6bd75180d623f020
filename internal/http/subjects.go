package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bibliotek/catalog/internal/dto"
	"github.com/bibliotek/catalog/internal/services"
)

// SubjectsController exposes subject CRUD over the JSON API.
type SubjectsController struct {
	service *services.SubjectService
}

// NewSubjectsController creates a new subjects controller.
func NewSubjectsController(service *services.SubjectService) *SubjectsController {
	return &SubjectsController{service: service}
}

// List returns one page of subjects. Supported query parameters: search, id,
// description, page, per_page.
func (ctrl *SubjectsController) List(c *gin.Context) {
	filters := collectFilters(c, "search", "id", "description")
	page := queryInt(c, "page", 1)
	perPage := queryInt(c, "per_page", defaultPerPage)

	result, err := ctrl.service.List(filters, page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get returns a single subject.
func (ctrl *SubjectsController) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	subject, err := ctrl.service.GetOne(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SubjectFromEntity(subject).Serialize())
}

// Create validates the payload and persists a new subject.
func (ctrl *SubjectsController) Create(c *gin.Context) {
	fields, ok := bindFields(c)
	if !ok {
		return
	}
	d, err := dto.SubjectFromInput(fields)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := d.Validate(); err != nil {
		respondError(c, err)
		return
	}

	subject, err := ctrl.service.Create(d)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.SubjectFromEntity(subject).Serialize())
}

// Update validates the payload and applies it to an existing subject.
func (ctrl *SubjectsController) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	subject, err := ctrl.service.GetOne(id)
	if err != nil {
		respondError(c, err)
		return
	}

	fields, ok := bindFields(c)
	if !ok {
		return
	}
	d, err := dto.SubjectFromInput(fields)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := d.Validate(); err != nil {
		respondError(c, err)
		return
	}

	updated, err := ctrl.service.Update(subject, d)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SubjectFromEntity(updated).Serialize())
}

// Delete removes a subject.
func (ctrl *SubjectsController) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	subject, err := ctrl.service.GetOne(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if _, err := ctrl.service.Delete(subject); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
