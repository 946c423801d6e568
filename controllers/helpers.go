package controllers

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"inventory/config"
	"inventory/listkit"
	"inventory/models"
	"inventory/utils"
)

func dbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// paginate applies the optional ?page and ?limit query params to an already
// filtered list. Without either param the whole list is returned.
func paginate[T any](c *gin.Context, records []T) []T {
	if c.Query("page") == "" && c.Query("limit") == "" {
		return records
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	from, to := listkit.Slice(page, limit, len(records))
	return records[from:to]
}

// requirePass re-checks the acting user's password before a destructive
// operation goes through. The user is taken from the token, never from the
// request body.
func requirePass(c *gin.Context, pass string) bool {
	userID, _ := c.Get("userID")
	id, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		c.JSON(401, gin.H{"message": "Invalid session"})
		return false
	}

	ctx, cancel := dbCtx()
	defer cancel()

	var user models.User
	if err := config.UserCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		c.JSON(401, gin.H{"message": "Invalid session"})
		return false
	}
	if err := utils.VerifyPassword(user.Password, pass); err != nil {
		c.JSON(403, gin.H{"message": "Incorrect password"})
		return false
	}
	return true
}
