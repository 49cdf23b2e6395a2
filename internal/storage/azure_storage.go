package storage

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"os"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// BlobStorage is the narrow blob-download surface azureImageFetcher
// drives. Kept distinct from ImageFetcher so the azblob-specific
// container/blob addressing stays out of the ImageFetcher contract the
// rest of the pipeline depends on.
type BlobStorage interface {
	GetImage(ctx context.Context, containerName, blobName string) (image.Image, error)
}

type azureStorage struct {
	client *azblob.Client
}

// NewAzureStorage builds a BlobStorage backed by shared-key credentials.
func NewAzureStorage(accountName string, accountKey string) (BlobStorage, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, fmt.Errorf("azure credential: %w", err)
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s.blob.core.windows.net", accountName),
		credential,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("azure client: %w", err)
	}

	return &azureStorage{client: client}, nil
}

func (s *azureStorage) GetImage(ctx context.Context, containerName, blobName string) (image.Image, error) {
	downloadResponse, err := s.client.DownloadStream(ctx, containerName, blobName, nil)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}

	retryReader := downloadResponse.Body
	defer retryReader.Close()

	img, _, err := image.Decode(retryReader)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// azureImageFetcher adapts BlobStorage to ImageFetcher so the factory
// (internal/factory) can hand either HTTP or Azure backends to the
// container under the same interface. FetchImage treats its argument as
// a blob name relative to the container baked in at construction time,
// since object-measurement callers address rasters by name within one
// known container rather than by arbitrary blob URL.
type azureImageFetcher struct {
	storage       BlobStorage
	containerName string
}

// NewAzureImageFetcher builds an ImageFetcher for the blob container at
// containerURL (e.g. "https://myaccount.blob.core.windows.net/mycontainer").
// The storage account name is taken from containerURL's host, the
// container name from its path, and the shared key from the
// AZURE_STORAGE_ACCOUNT_KEY environment variable.
func NewAzureImageFetcher(containerURL string) (ImageFetcher, error) {
	parsed, err := url.Parse(containerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid azure container URL: %w", err)
	}

	accountName := strings.SplitN(parsed.Host, ".", 2)[0]
	containerName := strings.TrimPrefix(parsed.Path, "/")
	if accountName == "" || containerName == "" {
		return nil, fmt.Errorf("azure container URL must be https://<account>.blob.core.windows.net/<container>")
	}

	accountKey := os.Getenv("AZURE_STORAGE_ACCOUNT_KEY")
	if accountKey == "" {
		return nil, fmt.Errorf("AZURE_STORAGE_ACCOUNT_KEY is not set")
	}

	blobStorage, err := NewAzureStorage(accountName, accountKey)
	if err != nil {
		return nil, err
	}

	return &azureImageFetcher{storage: blobStorage, containerName: containerName}, nil
}

func (f *azureImageFetcher) FetchImage(ctx context.Context, imageURL string) (image.Image, error) {
	blobName := imageURL
	if parsed, err := url.Parse(imageURL); err == nil && parsed.Path != "" && (parsed.Scheme == "https" || parsed.Scheme == "http") {
		blobName = strings.TrimPrefix(parsed.Path, "/"+f.containerName+"/")
	}
	return f.storage.GetImage(ctx, f.containerName, blobName)
}
