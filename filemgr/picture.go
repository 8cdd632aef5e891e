package filemgr

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"plateful/utils"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const recipePicDir = "./static/recipepic"

// SaveRecipeImage stores one uploaded image as jpg plus a 300px-wide
// thumbnail, and returns the public path of the original.
func SaveRecipeImage(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open image file: %w", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	uniqueID := strings.ReplaceAll(uuid.New().String(), "-", "")
	originalPath := filepath.Join(recipePicDir, uniqueID+".jpg")
	thumbDir := filepath.Join(recipePicDir, "thumb")
	thumbnailPath := filepath.Join(thumbDir, uniqueID+".jpg")

	if err := utils.EnsureDir(recipePicDir); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := utils.EnsureDir(thumbDir); err != nil {
		return "", fmt.Errorf("failed to create thumbnail directory: %w", err)
	}

	if err := imaging.Save(img, originalPath); err != nil {
		return "", fmt.Errorf("failed to save original image: %w", err)
	}

	thumbImg := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumbImg, thumbnailPath); err != nil {
		return "", fmt.Errorf("failed to save thumbnail: %w", err)
	}

	return "/static/recipepic/" + uniqueID + ".jpg", nil
}

// SaveRecipeImages processes every file under formKey in an already-parsed
// multipart request. Files with an unsupported content type fail the whole
// upload; the handler has already been answered in that case.
func SaveRecipeImages(w http.ResponseWriter, r *http.Request, formKey string) ([]string, bool) {
	if r.MultipartForm == nil {
		return nil, true
	}

	var paths []string
	for _, fileHeader := range r.MultipartForm.File[formKey] {
		if !utils.ValidateImageFileType(w, fileHeader) {
			return nil, false
		}
		path, err := SaveRecipeImage(fileHeader)
		if err != nil {
			http.Error(w, "Error saving file", http.StatusInternalServerError)
			return nil, false
		}
		paths = append(paths, path)
	}
	return paths, true
}
