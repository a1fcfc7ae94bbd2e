package service

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/Drwalbin/contacts-api/internal/storage"

	"github.com/disintegration/imaging"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/viper"
)

// AvatarSize is the edge length every stored avatar is normalized to
const AvatarSize = 250

const nameCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var saveableExts = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff"}

// AvatarProcessor normalizes uploaded images and hands them to the
// avatar store
type AvatarProcessor struct {
	Store  storage.AvatarStore
	TmpDir string
}

func NewAvatarProcessor(s storage.AvatarStore) (*AvatarProcessor, error) {
	tmp := viper.GetString("storage.tmp_dir")
	if err := os.MkdirAll(tmp, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create tmp directory, %w", err)
	}

	return &AvatarProcessor{
		Store:  s,
		TmpDir: tmp,
	}, nil
}

// Do decodes the uploaded image, crops it to a centered square of
// AvatarSize pixels and moves the result into public storage under a
// collision-resistant name. Cropping is used instead of a naive resize
// so non-square uploads don't end up distorted
func (a *AvatarProcessor) Do(ctx context.Context, src io.Reader, originalName string) (string, error) {
	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("failed to decode avatar image, %w", err)
	}

	img = imaging.Fill(img, AvatarSize, AvatarSize, imaging.Center, imaging.Lanczos)

	ext := strings.ToLower(filepath.Ext(originalName))
	if !slices.Contains(saveableExts, ext) {
		ext = ".png"
	}

	suffix, err := gonanoid.Generate(nameCharset, 8)
	if err != nil {
		return "", fmt.Errorf("failed to generate avatar name, %w", err)
	}

	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), suffix, ext)
	tmpPath := filepath.Join(a.TmpDir, name)

	if err := imaging.Save(img, tmpPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write processed avatar, %w", err)
	}

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return a.Store.Put(ctx, tmpPath, name, contentType)
}
