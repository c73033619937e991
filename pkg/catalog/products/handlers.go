package products

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/commercekit/catalog/pkg/catalog/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const notFoundMessage = "No product found with this id!"

// Handler handles product-related requests
type Handler struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewHandler creates a new products handler
func NewHandler(db *gorm.DB, log *zap.Logger) *Handler {
	return &Handler{db: db, log: log}
}

// CreateProductRequest represents the request to create a product
type CreateProductRequest struct {
	ProductName string  `json:"product_name" binding:"required"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	CategoryID  *uint   `json:"category_id"`
	TagIDs      []uint  `json:"tagIds"`
}

// UpdateProductRequest represents the request to update a product.
// Pointer fields distinguish "absent" from zero values.
type UpdateProductRequest struct {
	ProductName string   `json:"product_name"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	CategoryID  *uint    `json:"category_id"`
	TagIDs      []uint   `json:"tagIds"`
}

// tagsExist verifies that every id references an existing tag, returning
// the data layer's foreign key error when one does not. Pairings must
// never reference a tag row that is not there.
func tagsExist(db *gorm.DB, tagIDs []uint) error {
	unique := make(map[uint]bool, len(tagIDs))
	ids := make([]uint, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		if !unique[tagID] {
			unique[tagID] = true
			ids = append(ids, tagID)
		}
	}

	var count int64
	if err := db.Model(&models.Tag{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(ids)) {
		return gorm.ErrForeignKeyViolated
	}
	return nil
}

// diffTagLinks computes the minimal add/remove sets that turn the existing
// pairings into the desired tag id list. Pairings whose tag survives are
// left alone so their join-row ids are preserved.
func diffTagLinks(productID uint, existing []models.ProductTag, desired []uint) (toAdd []models.ProductTag, toRemove []uint) {
	current := make(map[uint]bool, len(existing))
	for _, pt := range existing {
		current[pt.TagID] = true
	}

	wanted := make(map[uint]bool, len(desired))
	for _, tagID := range desired {
		wanted[tagID] = true
		if !current[tagID] {
			toAdd = append(toAdd, models.ProductTag{ProductID: productID, TagID: tagID})
			current[tagID] = true
		}
	}

	for _, pt := range existing {
		if !wanted[pt.TagID] {
			toRemove = append(toRemove, pt.ID)
		}
	}
	return toAdd, toRemove
}

// List returns all products
// @Summary List products
// @Description Get all products with their category and related tags
// @Tags products
// @Produce json
// @Success 200 {array} models.Product
// @Router /products [get]
func (h *Handler) List(c *gin.Context) {
	var products []models.Product
	if err := h.db.Preload("Category").Preload("Tags").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

// Get returns one product with its associations
// @Summary Get a product
// @Description Get a product by id with its category and related tags
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Product
// @Failure 404 {object} map[string]string "Product not found"
// @Router /products/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	var product models.Product
	err := h.db.Preload("Category").Preload("Tags").First(&product, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": notFoundMessage})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, product)
}

// GetSolo returns one product with no associated data
// @Summary Get a bare product
// @Description Get a product by id without any associations
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Product
// @Failure 404 {object} map[string]string "Product not found"
// @Router /products/solo/{id} [get]
func (h *Handler) GetSolo(c *gin.Context) {
	var product models.Product
	err := h.db.First(&product, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": notFoundMessage})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, product)
}

// Create creates a new product and, when tag ids are supplied, its tag
// pairings. Responds once with the created product and its tags attached.
// @Summary Create a product
// @Description Create a product, optionally pairing it with existing tags
// @Tags products
// @Accept json
// @Produce json
// @Param request body CreateProductRequest true "Product details"
// @Success 200 {object} models.Product
// @Failure 400 {object} map[string]string "Validation or constraint error"
// @Router /products [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := models.Product{
		ProductName: req.ProductName,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
	}
	if err := h.db.Create(&product).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.log.Info("adding new product",
		zap.String("product_name", product.ProductName),
		zap.Float64("price", product.Price),
		zap.Int("stock", product.Stock),
	)

	if len(req.TagIDs) > 0 {
		if err := tagsExist(h.db, req.TagIDs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		pairings := make([]models.ProductTag, len(req.TagIDs))
		for i, tagID := range req.TagIDs {
			pairings[i] = models.ProductTag{ProductID: product.ID, TagID: tagID}
		}
		if err := h.db.Create(&pairings).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := h.db.Preload("Tags").First(&product, product.ID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, product)
}

// Update applies field changes to a product and reconciles its tag
// pairings against the desired tagIds list. The whole sequence runs in one
// transaction so a failure cannot leave the product updated but its tags
// half reconciled. Responds with the newly created pairings only.
// @Summary Update a product
// @Description Update product fields and reconcile its tag pairings
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body UpdateProductRequest true "Updated product details"
// @Success 200 {array} models.ProductTag
// @Failure 400 {object} map[string]string "Validation or constraint error"
// @Router /products/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.ProductName != "" {
		updates["product_name"] = req.ProductName
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}

	added := []models.ProductTag{}
	removed := 0
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&models.Product{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
		}

		// An empty or absent tagIds list requests no tag changes.
		if len(req.TagIDs) == 0 {
			return nil
		}

		// New pairings must reference an existing product
		var productCount int64
		if err := tx.Model(&models.Product{}).Where("id = ?", id).Count(&productCount).Error; err != nil {
			return err
		}
		if productCount == 0 {
			return gorm.ErrForeignKeyViolated
		}

		var existing []models.ProductTag
		if err := tx.Where("product_id = ?", id).Find(&existing).Error; err != nil {
			return err
		}

		toAdd, toRemove := diffTagLinks(uint(id), existing, req.TagIDs)

		if len(toRemove) > 0 {
			if err := tx.Delete(&models.ProductTag{}, toRemove).Error; err != nil {
				return err
			}
		}
		if len(toAdd) > 0 {
			addIDs := make([]uint, len(toAdd))
			for i, pt := range toAdd {
				addIDs[i] = pt.TagID
			}
			if err := tagsExist(tx, addIDs); err != nil {
				return err
			}
			if err := tx.Create(&toAdd).Error; err != nil {
				return err
			}
			added = toAdd
		}
		removed = len(toRemove)
		return nil
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.log.Info("updated product",
		zap.Uint64("product_id", id),
		zap.Int("tags_added", len(added)),
		zap.Int("tags_removed", removed),
	)

	c.JSON(http.StatusOK, added)
}

// Delete deletes a product and its tag pairings
// @Summary Delete a product
// @Description Delete a product by id
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {integer} int64 "Number of rows deleted"
// @Failure 404 {object} map[string]string "Product not found"
// @Router /products/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")

	var deleted int64
	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductTag{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Product{}, "id = ?", id)
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

	h.log.Info("deleted product", zap.String("id", id))
	c.JSON(http.StatusOK, deleted)
}

// RegisterRoutes registers product routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/products", h.List)
	rg.GET("/products/solo/:id", h.GetSolo)
	rg.GET("/products/:id", h.Get)
	rg.POST("/products", h.Create)
	rg.PUT("/products/:id", h.Update)
	rg.DELETE("/products/:id", h.Delete)
}
