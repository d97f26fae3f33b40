package helpers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const (
	AvatarFolder    = "carnival/avatars"
	IncidentsFolder = "carnival/incidents"
	FamilyFolder    = "carnival/family"
)

// ImageUploader stores images (data URIs or remote URLs) and returns their
// public URLs in order.
type ImageUploader interface {
	Upload(ctx context.Context, folder string, sources []string) ([]string, error)
}

type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	logger *slog.Logger
}

func NewCloudinaryUploader(cld *cloudinary.Cloudinary, logger *slog.Logger) *CloudinaryUploader {
	return &CloudinaryUploader{cld: cld, logger: logger}
}

func (u *CloudinaryUploader) Upload(ctx context.Context, folder string, sources []string) ([]string, error) {
	urls := make([]string, 0, len(sources))
	for i, src := range sources {
		src = strings.TrimSpace(src)
		if src == "" {
			u.logger.Debug("Skipping empty image source", "index", i)
			continue
		}
		if strings.Contains(src, "res.cloudinary.com/") {
			urls = append(urls, src)
			continue
		}
		res, err := u.cld.Upload.Upload(ctx, src, uploader.UploadParams{
			Folder: folder,
			Tags:   []string{"carnivalxperience"},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to upload image %d: %v", i, err)
		}
		if res.Error.Message != "" {
			return nil, fmt.Errorf("failed to upload image %d: %s", i, res.Error.Message)
		}
		urls = append(urls, res.SecureURL)
	}
	return urls, nil
}

// PassthroughUploader keeps image references as given when no image host is
// configured.
type PassthroughUploader struct{}

func (PassthroughUploader) Upload(ctx context.Context, folder string, sources []string) ([]string, error) {
	urls := make([]string, 0, len(sources))
	for _, src := range sources {
		if src = strings.TrimSpace(src); src != "" {
			urls = append(urls, src)
		}
	}
	return urls, nil
}
