package productControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Murshi404/Online-store-Project/models"
)

type ProductInput struct {
	Name        string          `json:"name" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Image       string          `json:"image"`
	CategoryID  *uint           `json:"category_id"`
	IsAvailable *bool           `json:"is_available"`
}

// CreateProduct adds a catalog entry.
// POST /admin/products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price cannot be negative"})
			return
		}

		product := models.Product{
			Name:        input.Name,
			Price:       input.Price,
			Image:       input.Image,
			CategoryID:  input.CategoryID,
			IsAvailable: true,
		}
		if input.IsAvailable != nil {
			product.IsAvailable = *input.IsAvailable
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}
