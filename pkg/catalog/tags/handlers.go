package tags

import (
	"errors"
	"net/http"

	"github.com/commercekit/catalog/pkg/catalog/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler handles tag-related requests
type Handler struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewHandler creates a new tags handler
func NewHandler(db *gorm.DB, log *zap.Logger) *Handler {
	return &Handler{db: db, log: log}
}

// TagRequest represents the request to create or update a tag
type TagRequest struct {
	TagName string `json:"tag_name" binding:"required"`
}

// List returns all tags
// @Summary List tags
// @Description Get all tags with their related products
// @Tags tags
// @Produce json
// @Success 200 {array} models.Tag
// @Router /tags [get]
func (h *Handler) List(c *gin.Context) {
	var tags []models.Tag
	if err := h.db.Preload("Products").Find(&tags).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tags)
}

// Get returns one tag with its related products
// @Summary Get a tag
// @Description Get a tag by id with its related products
// @Tags tags
// @Produce json
// @Param id path int true "Tag ID"
// @Success 200 {object} models.Tag
// @Failure 404 {object} map[string]string "Tag not found"
// @Router /tags/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	var tag models.Tag
	err := h.db.Preload("Products").First(&tag, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No tags found with this id!"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tag)
}

// GetSolo returns one tag with no associated data
// @Summary Get a bare tag
// @Description Get a tag by id without any associations
// @Tags tags
// @Produce json
// @Param id path int true "Tag ID"
// @Success 200 {object} models.Tag
// @Failure 404 {object} map[string]string "Tag not found"
// @Router /tags/solo/{id} [get]
func (h *Handler) GetSolo(c *gin.Context) {
	var tag models.Tag
	err := h.db.First(&tag, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No tag found with this id!"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tag)
}

// Create creates a new tag
// @Summary Create a tag
// @Description Create a new tag
// @Tags tags
// @Accept json
// @Produce json
// @Param request body TagRequest true "Tag details"
// @Success 200 {object} models.Tag
// @Failure 400 {object} map[string]string "Validation or constraint error"
// @Router /tags [post]
func (h *Handler) Create(c *gin.Context) {
	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tag := models.Tag{TagName: req.TagName}
	if err := h.db.Create(&tag).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.log.Info("adding new tag", zap.String("tag_name", tag.TagName))
	c.JSON(http.StatusOK, tag)
}

// Update updates a tag's name. Failures respond 500, matching the
// observed contract for this resource (categories respond 400).
// @Summary Update a tag
// @Description Update a tag's name by id
// @Tags tags
// @Accept json
// @Produce json
// @Param id path int true "Tag ID"
// @Param request body TagRequest true "Updated tag details"
// @Success 200 {integer} int64 "Number of rows updated"
// @Failure 500 {object} map[string]string "Update error"
// @Router /tags/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result := h.db.Model(&models.Tag{}).
		Where("id = ?", c.Param("id")).
		Update("tag_name", req.TagName)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}

	h.log.Info("updated tag",
		zap.String("id", c.Param("id")),
		zap.String("tag_name", req.TagName),
	)
	c.JSON(http.StatusOK, result.RowsAffected)
}

// Delete deletes a tag and its product pairings
// @Summary Delete a tag
// @Description Delete a tag by id
// @Tags tags
// @Produce json
// @Param id path int true "Tag ID"
// @Success 200 {integer} int64 "Number of rows deleted"
// @Failure 404 {object} map[string]string "Tag not found"
// @Router /tags/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")

	var deleted int64
	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&models.ProductTag{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Tag{}, "id = ?", id)
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
		c.JSON(http.StatusNotFound, gin.H{"message": "No tag found with this id!"})
		return
	}

	h.log.Info("deleted tag", zap.String("id", id))
	c.JSON(http.StatusOK, deleted)
}

// RegisterRoutes registers tag routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/tags", h.List)
	rg.GET("/tags/solo/:id", h.GetSolo)
	rg.GET("/tags/:id", h.Get)
	rg.POST("/tags", h.Create)
	rg.PUT("/tags/:id", h.Update)
	rg.DELETE("/tags/:id", h.Delete)
}
