package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bibliotek/catalog/internal/dto"
	"github.com/bibliotek/catalog/internal/services"
)

// AuthorsController exposes author CRUD over the JSON API.
type AuthorsController struct {
	service *services.AuthorService
}

// NewAuthorsController creates a new authors controller.
func NewAuthorsController(service *services.AuthorService) *AuthorsController {
	return &AuthorsController{service: service}
}

// List returns one page of authors. Supported query parameters: search, id,
// name, page, per_page.
func (ctrl *AuthorsController) List(c *gin.Context) {
	filters := collectFilters(c, "search", "id", "name")
	page := queryInt(c, "page", 1)
	perPage := queryInt(c, "per_page", defaultPerPage)

	result, err := ctrl.service.List(filters, page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get returns a single author.
func (ctrl *AuthorsController) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	author, err := ctrl.service.GetOne(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AuthorFromEntity(author).Serialize())
}

// Create validates the payload and persists a new author.
func (ctrl *AuthorsController) Create(c *gin.Context) {
	fields, ok := bindFields(c)
	if !ok {
		return
	}
	d, err := dto.AuthorFromInput(fields)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := d.Validate(); err != nil {
		respondError(c, err)
		return
	}

	author, err := ctrl.service.Create(d)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.AuthorFromEntity(author).Serialize())
}

// Update validates the payload and applies it to an existing author.
func (ctrl *AuthorsController) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	author, err := ctrl.service.GetOne(id)
	if err != nil {
		respondError(c, err)
		return
	}

	fields, ok := bindFields(c)
	if !ok {
		return
	}
	d, err := dto.AuthorFromInput(fields)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := d.Validate(); err != nil {
		respondError(c, err)
		return
	}

	updated, err := ctrl.service.Update(author, d)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AuthorFromEntity(updated).Serialize())
}

// Delete removes an author.
func (ctrl *AuthorsController) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	author, err := ctrl.service.GetOne(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if _, err := ctrl.service.Delete(author); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
