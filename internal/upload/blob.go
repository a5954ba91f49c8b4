// Package upload pushes run artifacts to Azure Blob Storage.
package upload

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// BlobUploader writes files into one container of a storage account,
// authenticating with the ambient Azure credential chain.
type BlobUploader struct {
	client    *azblob.Client
	container string
}

// NewBlobUploader builds an uploader for the given service URL
// (https://<account>.blob.core.windows.net) and container.
func NewBlobUploader(serviceURL, container string) (*BlobUploader, error) {
	if serviceURL == "" {
		return nil, fmt.Errorf("upload: service URL is required")
	}
	if container == "" {
		return nil, fmt.Errorf("upload: container name is required")
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("upload: building credential: %w", err)
	}

	client, err := azblob.NewClient(serviceURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("upload: building client: %w", err)
	}
	return &BlobUploader{client: client, container: container}, nil
}

// UploadFile uploads one local file; the blob is named after the file's
// base name under the given prefix.
func (u *BlobUploader) UploadFile(ctx context.Context, path, prefix string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("upload: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	blobName := filepath.Base(path)
	if prefix != "" {
		blobName = prefix + "/" + blobName
	}

	if _, err := u.client.UploadFile(ctx, u.container, blobName, f, nil); err != nil {
		return fmt.Errorf("upload: uploading %s: %w", blobName, err)
	}
	slog.Info("uploaded artifact", "container", u.container, "blob", blobName)
	return nil
}
