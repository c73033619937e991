package categories

import (
	"errors"
	"net/http"

	"github.com/commercekit/catalog/pkg/catalog/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const notFoundMessage = "No category found with this id!"

// Handler handles category-related requests
type Handler struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewHandler creates a new categories handler
func NewHandler(db *gorm.DB, log *zap.Logger) *Handler {
	return &Handler{db: db, log: log}
}

// CategoryRequest represents the request to create or update a category
type CategoryRequest struct {
	CategoryName string `json:"category_name" binding:"required"`
}

// List returns all categories
// @Summary List categories
// @Description Get all categories with their products
// @Tags categories
// @Produce json
// @Success 200 {array} models.Category
// @Router /categories [get]
func (h *Handler) List(c *gin.Context) {
	var cats []models.Category
	if err := h.db.Preload("Products").Find(&cats).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cats)
}

// Get returns one category with its products
// @Summary Get a category
// @Description Get a category by id with its products
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} models.Category
// @Failure 404 {object} map[string]string "Category not found"
// @Router /categories/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	var cat models.Category
	err := h.db.Preload("Products").First(&cat, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": notFoundMessage})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cat)
}

// GetByName returns categories matching a name exactly
// @Summary Get categories by name
// @Description Get all categories whose name matches exactly, with products
// @Tags categories
// @Produce json
// @Param category_name path string true "Category name"
// @Success 200 {array} models.Category
// @Failure 404 {object} map[string]string "Category not found"
// @Router /categories/category/{category_name} [get]
func (h *Handler) GetByName(c *gin.Context) {
	var cats []models.Category
	err := h.db.Preload("Products").
		Where("category_name = ?", c.Param("category_name")).
		Find(&cats).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(cats) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No category found with this name!"})
		return
	}
	c.JSON(http.StatusOK, cats)
}

// Create creates a new category
// @Summary Create a category
// @Description Create a new category
// @Tags categories
// @Accept json
// @Produce json
// @Param request body CategoryRequest true "Category details"
// @Success 200 {object} models.Category
// @Failure 400 {object} map[string]string "Validation or constraint error"
// @Router /categories [post]
func (h *Handler) Create(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cat := models.Category{CategoryName: req.CategoryName}
	if err := h.db.Create(&cat).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.log.Info("adding new category", zap.String("category_name", cat.CategoryName))
	c.JSON(http.StatusOK, cat)
}

// Update updates a category's name
// @Summary Update a category
// @Description Update a category's name by id
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param request body CategoryRequest true "Updated category details"
// @Success 200 {integer} int64 "Number of rows updated"
// @Failure 400 {object} map[string]string "Validation or constraint error"
// @Router /categories/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.db.Model(&models.Category{}).
		Where("id = ?", c.Param("id")).
		Update("category_name", req.CategoryName)
	if result.Error != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": result.Error.Error()})
		return
	}

	h.log.Info("updated category",
		zap.String("id", c.Param("id")),
		zap.String("category_name", req.CategoryName),
	)
	c.JSON(http.StatusOK, result.RowsAffected)
}

// Delete deletes a category and cascades to its products and their tag
// pairings. The cascade runs inside one transaction rather than relying on
// the sqlite foreign_keys pragma being enabled.
// @Summary Delete a category
// @Description Delete a category by id, deleting its products with it
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {integer} int64 "Number of rows deleted"
// @Failure 404 {object} map[string]string "Category not found"
// @Router /categories/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")

	var deleted int64
	err := h.db.Transaction(func(tx *gorm.DB) error {
		var productIDs []uint
		if err := tx.Model(&models.Product{}).Where("category_id = ?", id).Pluck("id", &productIDs).Error; err != nil {
			return err
		}
		if len(productIDs) > 0 {
			if err := tx.Where("product_id IN ?", productIDs).Delete(&models.ProductTag{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.Product{}, productIDs).Error; err != nil {
				return err
			}
		}
		result := tx.Delete(&models.Category{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if deleted == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": notFoundMessage})
		return
	}

	h.log.Info("deleted category", zap.String("id", id))
	c.JSON(http.StatusOK, deleted)
}

// RegisterRoutes registers category routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/categories", h.List)
	rg.GET("/categories/category/:category_name", h.GetByName)
	rg.GET("/categories/:id", h.Get)
	rg.POST("/categories", h.Create)
	rg.PUT("/categories/:id", h.Update)
	rg.DELETE("/categories/:id", h.Delete)
}
