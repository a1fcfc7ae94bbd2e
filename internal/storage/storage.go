// Package storage defines where processed avatar images end up. Either
// a public directory served by the app itself or an S3 bucket
package storage

import (
	"context"
	"errors"

	"github.com/spf13/viper"
)

// AvatarStore moves finished avatar files into public storage
type AvatarStore interface {
	// Put consumes the file at path and stores it under name. Returns
	// the public URL of the stored avatar. On failure the source file
	// is deleted
	Put(ctx context.Context, path, name, contentType string) (string, error)

	// Remove deletes a previously stored avatar by its public URL.
	// URLs that don't belong to the store (like gravatar defaults)
	// are ignored
	Remove(ctx context.Context, url string) error
}

// New picks the avatar store backend based on the configured storage type
func New() (AvatarStore, error) {
	switch viper.GetString("storage.type") {
	case "s3":
		return NewS3()
	case "local":
		return NewLocal(viper.GetString("storage.avatar_dir"))
	default:
		return nil, errors.New("invalid storage type provided")
	}
}
