package face

import (
	"fmt"

	"github.com/HtetLinMaung/pytrueface/internal/config"
	"github.com/HtetLinMaung/pytrueface/internal/extractor"
	"github.com/HtetLinMaung/pytrueface/internal/extractor/deepface"
	"github.com/HtetLinMaung/pytrueface/internal/extractor/mock"
)

// ExtractorType defines supported embedding extractor backends
type ExtractorType string

const (
	// ExtractorTypeDeepFace is the DeepFace HTTP extractor
	ExtractorTypeDeepFace ExtractorType = "deepface"
	// ExtractorTypeMock is the deterministic in-process extractor (dev/test)
	ExtractorTypeMock ExtractorType = "mock"
)

// NewExtractor creates an Extractor instance based on configuration.
//
// Environment variables:
//   - EXTRACTOR_TYPE: "deepface" or "mock" (default: "deepface")
//   - EXTRACTOR_URL: DeepFace API URL (default: "http://localhost:5005")
//   - EMBEDDING_DIM: dimension of the embedding space (default: 128)
func NewExtractor(cfg *config.Config) (extractor.Extractor, error) {
	switch ExtractorType(cfg.ExtractorType) {
	case ExtractorTypeMock:
		return mock.New(cfg.EmbeddingDim), nil

	case ExtractorTypeDeepFace, "":
		return newDeepFaceExtractor(cfg), nil

	default:
		return nil, fmt.Errorf("unknown extractor type: %s (supported: %s, %s)",
			cfg.ExtractorType, ExtractorTypeDeepFace, ExtractorTypeMock)
	}
}

func newDeepFaceExtractor(cfg *config.Config) extractor.Extractor {
	deepfaceConfig := deepface.DefaultConfig()
	if cfg.ExtractorURL != "" {
		deepfaceConfig.BaseURL = cfg.ExtractorURL
	}
	return deepface.NewExtractor(deepfaceConfig)
}
