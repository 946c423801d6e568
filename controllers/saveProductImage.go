package controllers

import (
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/nfnt/resize"
)

const (
	maxImageSize      = 5 * 1024 * 1024
	compressThreshold = 100 * 1024
	thumbWidth        = 200
)

// SaveProductImage stores the uploaded product photo under ./uploads and
// returns the stored filename plus a thumbnail filename. Images above the
// compression threshold are re-encoded at 800px width.
func SaveProductImage(c *gin.Context, file *multipart.FileHeader, productID string) (string, string, error) {
	if file.Size > maxImageSize {
		return "", "", fmt.Errorf("file size exceeds the 5MB limit")
	}

	if err := os.MkdirAll("./uploads", 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create uploads dir: %v", err)
	}

	filename := fmt.Sprintf("product_%s%s", productID, filepath.Ext(file.Filename))
	fullPath := filepath.Join("./uploads", filename)

	if file.Size > compressThreshold {
		src, err := file.Open()
		if err != nil {
			return "", "", fmt.Errorf("failed to open uploaded file: %v", err)
		}
		defer src.Close()

		img, _, err := image.Decode(src)
		if err != nil {
			return "", "", fmt.Errorf("failed to decode image: %v", err)
		}

		compressedImg := resize.Resize(800, 0, img, resize.Lanczos3)

		outFile, err := os.Create(fullPath)
		if err != nil {
			return "", "", fmt.Errorf("failed to create file: %v", err)
		}
		defer outFile.Close()

		if err := jpeg.Encode(outFile, compressedImg, &jpeg.Options{Quality: 80}); err != nil {
			return "", "", fmt.Errorf("failed to save compressed image: %v", err)
		}

		thumbName := fmt.Sprintf("product_%s_thumb.jpg", productID)
		thumbPath := filepath.Join("./uploads", thumbName)
		thumb := resize.Resize(thumbWidth, 0, img, resize.Lanczos3)
		thumbFile, err := os.Create(thumbPath)
		if err != nil {
			return "", "", fmt.Errorf("failed to create thumbnail: %v", err)
		}
		defer thumbFile.Close()
		if err := jpeg.Encode(thumbFile, thumb, &jpeg.Options{Quality: 80}); err != nil {
			return "", "", fmt.Errorf("failed to save thumbnail: %v", err)
		}

		return filename, thumbName, nil
	}

	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		return "", "", fmt.Errorf("failed to save product photo: %v", err)
	}
	return filename, "", nil
}
