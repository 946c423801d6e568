package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"inventory/config"
	"inventory/listkit"
	"inventory/models"
)

var productAccessors = []listkit.Accessor[models.Product]{
	listkit.Field(func(p models.Product) string { return p.Name }),
	listkit.Field(func(p models.Product) string { return p.SKU }),
	listkit.Field(func(p models.Product) string { return p.Category }),
	func(p models.Product) (string, bool) {
		if p.Description == "" {
			return "", false
		}
		return p.Description, true
	},
}

func GetAllProducts(c *gin.Context) {
	ctx, cancel := dbCtx()
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := config.ProductCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve products"})
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error decoding products"})
		return
	}

	products = listkit.Filter(products, c.Query("search"), productAccessors...)
	products = paginate(c, products)

	c.JSON(http.StatusOK, products)
}

func GetProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product id"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	var product models.Product
	if err := config.ProductCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// productFromForm reads the multipart create/update form. errs collects
// field-level validation messages keyed by field name.
func productFromForm(c *gin.Context) (models.Product, map[string]string) {
	errs := map[string]string{}

	name := strings.TrimSpace(c.PostForm("name"))
	sku := strings.TrimSpace(c.PostForm("sku"))
	category := strings.TrimSpace(c.PostForm("category"))
	if name == "" {
		errs["name"] = "Name is required"
	}
	if sku == "" {
		errs["sku"] = "SKU is required"
	}
	if category == "" {
		errs["category"] = "Category is required"
	}

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price < 0 {
		errs["price"] = "Price must be a non-negative number"
	}
	quantity, err := strconv.ParseFloat(c.DefaultPostForm("quantity", "0"), 64)
	if err != nil || quantity < 0 {
		errs["quantity"] = "Quantity must be a non-negative number"
	}
	minQuantity, err := strconv.ParseFloat(c.DefaultPostForm("minQuantity", "5"), 64)
	if err != nil || minQuantity < 1 {
		errs["minQuantity"] = "Minimum quantity must be at least 1"
	}

	return models.Product{
		Name:        name,
		SKU:         sku,
		Category:    category,
		Description: strings.TrimSpace(c.PostForm("description")),
		Price:       price,
		Quantity:    quantity,
		MinQuantity: minQuantity,
	}, errs
}

func CreateProduct(c *gin.Context) {
	product, errs := productFromForm(c)
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": errs})
		return
	}

	product.ID = primitive.NewObjectID()
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt

	if file, err := c.FormFile("image"); err == nil {
		image, thumb, err := SaveProductImage(c, file, product.ID.Hex())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		product.Image = image
		product.ImageThumb = thumb
	}

	ctx, cancel := dbCtx()
	defer cancel()

	if _, err := config.ProductCollection.InsertOne(ctx, product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, product)
}

func UpdateProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product id"})
		return
	}

	product, errs := productFromForm(c)
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": errs})
		return
	}

	update := bson.M{
		"name":        product.Name,
		"sku":         product.SKU,
		"category":    product.Category,
		"description": product.Description,
		"price":       product.Price,
		"quantity":    product.Quantity,
		"minquantity": product.MinQuantity,
		"updated_at":  time.Now(),
	}

	if file, err := c.FormFile("image"); err == nil {
		image, thumb, err := SaveProductImage(c, file, id.Hex())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		update["image"] = image
		update["image_thumb"] = thumb
	}

	ctx, cancel := dbCtx()
	defer cancel()

	res, err := config.ProductCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update product"})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	var updated models.Product
	if err := config.ProductCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load updated product"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func DeleteProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product id"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	res, err := config.ProductCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete product"})
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// GetLowStockProducts lists products at or below their minimum quantity,
// lowest first.
func GetLowStockProducts(c *gin.Context) {
	ctx, cancel := dbCtx()
	defer cancel()

	filter := bson.M{"$expr": bson.M{"$lte": []string{"$quantity", "$minquantity"}}}
	opts := options.Find().SetSort(bson.M{"quantity": 1})

	cursor, err := config.ProductCollection.Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve low stock products"})
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error decoding products"})
		return
	}

	c.JSON(http.StatusOK, products)
}
