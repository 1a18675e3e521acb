package productControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Murshi404/Online-store-Project/models"
)

// GetProducts lists the catalog. Optional filters: ?category=<slug> and
// ?available=true.
// GET /user/products
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Product{})

		if slug := c.Query("category"); slug != "" {
			var category models.Category
			if err := db.Where("slug = ?", slug).First(&category).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
					return
				}
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve category"})
				return
			}
			query = query.Where("category_id = ?", category.ID)
		}

		if c.Query("available") == "true" {
			query = query.Where("is_available = ?", true)
		}

		var products []models.Product
		if err := query.Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GetProductByID returns a single product.
// GET /user/products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			}
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
