package factory

import (
	"fmt"

	"github.com/brackenfield/objmeasure/internal/geometry"
	"github.com/brackenfield/objmeasure/internal/measure"
	"github.com/brackenfield/objmeasure/internal/storage"
)

// ExtractorType names a chain-code/convex-hull extraction strategy: a
// small string-keyed switch rather than a plugin registry, since the
// set of extraction strategies is closed and known at compile time.
type ExtractorType string

const (
	// MooreExtractor traces boundaries with Moore-neighbor tracing
	// (internal/geometry's default).
	MooreExtractor ExtractorType = "moore"
)

// ExtractorFactory creates the chain-code/convex-hull collaborators
// internal/measure.MeasurementTool needs for its ChainCodeBased and
// ConvexHullBased buckets.
type ExtractorFactory interface {
	CreateChainCodeExtractor(extractorType ExtractorType) (measure.ChainCodeExtractor, error)
	CreateConvexHullExtractor(extractorType ExtractorType) (measure.ConvexHullExtractor, error)
}

type extractorFactory struct{}

// NewExtractorFactory creates a new extractor factory.
func NewExtractorFactory() ExtractorFactory {
	return &extractorFactory{}
}

func (f *extractorFactory) CreateChainCodeExtractor(extractorType ExtractorType) (measure.ChainCodeExtractor, error) {
	switch extractorType {
	case MooreExtractor, "":
		return geometry.DefaultChainCodeExtractor, nil
	default:
		return nil, fmt.Errorf("unsupported chain code extractor type: %s", extractorType)
	}
}

func (f *extractorFactory) CreateConvexHullExtractor(extractorType ExtractorType) (measure.ConvexHullExtractor, error) {
	switch extractorType {
	case MooreExtractor, "":
		return geometry.DefaultConvexHullExtractor, nil
	default:
		return nil, fmt.Errorf("unsupported convex hull extractor type: %s", extractorType)
	}
}

// StorageType represents different types of raster storage backends.
type StorageType string

const (
	HTTPStorage  StorageType = "http"
	AzureStorage StorageType = "azure"
)

// StorageFactory creates storage implementations.
type StorageFactory interface {
	CreateStorage(storageType StorageType, azureContainerURL string) (storage.ImageFetcher, error)
}

type storageFactory struct{}

// NewStorageFactory creates a new storage factory.
func NewStorageFactory() StorageFactory {
	return &storageFactory{}
}

// CreateStorage creates an ImageFetcher for the given storage type,
// backed by a real azblob client for AzureStorage
// (internal/storage/azure_storage.go).
func (f *storageFactory) CreateStorage(storageType StorageType, azureContainerURL string) (storage.ImageFetcher, error) {
	switch storageType {
	case HTTPStorage:
		return storage.NewHTTPImageFetcher(), nil
	case AzureStorage:
		return storage.NewAzureImageFetcher(azureContainerURL)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storageType)
	}
}

// ComponentFactory combines all factories.
type ComponentFactory struct {
	ExtractorFactory ExtractorFactory
	StorageFactory   StorageFactory
}

// NewComponentFactory creates a new component factory.
func NewComponentFactory() *ComponentFactory {
	return &ComponentFactory{
		ExtractorFactory: NewExtractorFactory(),
		StorageFactory:   NewStorageFactory(),
	}
}
