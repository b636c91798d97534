// Package filemgr saves uploaded images under ./static and generates
// thumbnails. Uploads stay on local disk; there is no cloud storage tier.
package filemgr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

type EntityType string
type PictureType string

const (
	EntityUser       EntityType = "user"
	EntityLabour     EntityType = "labour"
	EntityContractor EntityType = "contractor"
	EntityCard       EntityType = "card"

	PicPhoto  PictureType = "photo"
	PicAvatar PictureType = "avatar"
	PicThumb  PictureType = "thumb"
)

const maxImageSize = 10 << 20

var (
	allowedExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
	allowedMIMEs      = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

	ErrInvalidExtension = errors.New("invalid file extension")
	ErrInvalidMIME      = errors.New("invalid MIME type")
)

// ResolvePath returns the on-disk directory for an entity/picture pair.
func ResolvePath(entity EntityType, pic PictureType) string {
	return filepath.Join("static", string(entity)+"pic", string(pic))
}

// SaveImage validates and writes an uploaded image, returning the stored
// filename.
func SaveImage(file multipart.File, header *multipart.FileHeader, entity EntityType, pic PictureType) (string, error) {
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !contains(allowedExtensions, ext) {
		return "", fmt.Errorf("%w: %s", ErrInvalidExtension, ext)
	}

	buf, err := io.ReadAll(io.LimitReader(file, maxImageSize))
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}

	mimeType := http.DetectContentType(buf)
	if !contains(allowedMIMEs, mimeType) {
		return "", fmt.Errorf("%w: %s", ErrInvalidMIME, mimeType)
	}

	dest := ResolvePath(entity, pic)
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dest, err)
	}

	filename := uuid.New().String() + ext
	if err := os.WriteFile(filepath.Join(dest, filename), buf, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", filename, err)
	}
	return filename, nil
}

// SaveImageWithThumb saves the image and a resized thumbnail of the given
// width. Thumbnail failure is non-fatal; the original name is still
// returned.
func SaveImageWithThumb(file multipart.File, header *multipart.FileHeader, entity EntityType, pic PictureType, thumbWidth int) (string, error) {
	defer file.Close()

	buf, err := io.ReadAll(io.LimitReader(file, maxImageSize))
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !contains(allowedExtensions, ext) {
		return "", fmt.Errorf("%w: %s", ErrInvalidExtension, ext)
	}
	mimeType := http.DetectContentType(buf)
	if !contains(allowedMIMEs, mimeType) {
		return "", fmt.Errorf("%w: %s", ErrInvalidMIME, mimeType)
	}

	dest := ResolvePath(entity, pic)
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dest, err)
	}

	filename := uuid.New().String() + ext
	if err := os.WriteFile(filepath.Join(dest, filename), buf, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", filename, err)
	}

	if img, _, err := image.Decode(bytes.NewReader(buf)); err == nil {
		generateThumbnail(img, entity, filename, thumbWidth)
	}

	return filename, nil
}

func generateThumbnail(img image.Image, entity EntityType, filename string, width int) {
	thumbDir := ResolvePath(entity, PicThumb)
	if err := os.MkdirAll(thumbDir, 0o755); err != nil {
		return
	}
	resized := imaging.Resize(img, width, 0, imaging.Lanczos)
	thumbName := strings.TrimSuffix(filename, filepath.Ext(filename)) + ".jpg"
	_ = imaging.Save(resized, filepath.Join(thumbDir, thumbName))
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
