package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/imagekit-developer/imagekit-go"
	"github.com/imagekit-developer/imagekit-go/api/uploader"
)

// ErrUploadDisabled is returned when the service runs without ImageKit
// credentials. The process keeps serving; only uploads fail.
var ErrUploadDisabled = errors.New("image upload is not configured")

// Uploader pushes a file to object storage and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, data []byte, fileName, folder string) (string, error)
}

// ImageKitUploader uploads files to ImageKit
type ImageKitUploader struct {
	ik *imagekit.ImageKit
}

// NewImageKitUploader creates an uploader from ImageKit credentials
func NewImageKitUploader(publicKey, privateKey, urlEndpoint string) *ImageKitUploader {
	ik := imagekit.NewFromParams(imagekit.NewParams{
		PublicKey:   publicKey,
		PrivateKey:  privateKey,
		UrlEndpoint: urlEndpoint,
	})
	return &ImageKitUploader{ik: ik}
}

// Upload sends the file content to ImageKit. No retry is performed; the
// caller owns any local copy of the file.
func (u *ImageKitUploader) Upload(ctx context.Context, data []byte, fileName, folder string) (string, error) {
	resp, err := u.ik.Uploader.Upload(ctx, bytes.NewReader(data), uploader.UploadParam{
		FileName: fileName,
		Folder:   folder,
	})
	if err != nil {
		return "", fmt.Errorf("imagekit upload %q: %w", fileName, err)
	}
	return resp.Data.Url, nil
}

// DisabledUploader is used when ImageKit credentials are absent
type DisabledUploader struct{}

// NewDisabledUploader returns an uploader whose uploads always fail
func NewDisabledUploader() *DisabledUploader {
	return &DisabledUploader{}
}

func (*DisabledUploader) Upload(context.Context, []byte, string, string) (string, error) {
	return "", ErrUploadDisabled
}
