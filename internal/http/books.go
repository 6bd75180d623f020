package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bibliotek/catalog/internal/dto"
	"github.com/bibliotek/catalog/internal/services"
)

// BooksController exposes book CRUD over the JSON API.
type BooksController struct {
	service *services.BookService
}

// NewBooksController creates a new books controller.
func NewBooksController(service *services.BookService) *BooksController {
	return &BooksController{service: service}
}

// List returns one page of books. Supported query parameters: search,
// edition, year, price, id, publisher, page, per_page.
func (ctrl *BooksController) List(c *gin.Context) {
	filters := collectFilters(c, "search", "edition", "year", "price", "id", "publisher")
	page := queryInt(c, "page", 1)
	perPage := queryInt(c, "per_page", defaultPerPage)

	result, err := ctrl.service.List(filters, page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get returns a single book with both relations.
func (ctrl *BooksController) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	book, err := ctrl.service.GetOne(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BookFromEntity(book).Serialize())
}

// Create validates the payload and persists a new book with its associations.
func (ctrl *BooksController) Create(c *gin.Context) {
	fields, ok := bindFields(c)
	if !ok {
		return
	}
	d, err := dto.BookFromInput(fields)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := d.Validate(); err != nil {
		respondError(c, err)
		return
	}

	book, err := ctrl.service.Create(d)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.BookFromEntity(book).Serialize())
}

// Update validates the payload and applies it to an existing book.
func (ctrl *BooksController) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	book, err := ctrl.service.GetOne(id)
	if err != nil {
		respondError(c, err)
		return
	}

	fields, ok := bindFields(c)
	if !ok {
		return
	}
	d, err := dto.BookFromInput(fields)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := d.Validate(); err != nil {
		respondError(c, err)
		return
	}

	updated, err := ctrl.service.Update(book, d)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BookFromEntity(updated).Serialize())
}

// Delete removes a book.
func (ctrl *BooksController) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	book, err := ctrl.service.GetOne(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if _, err := ctrl.service.Delete(book); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
