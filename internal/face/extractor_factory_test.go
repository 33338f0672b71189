package face

import (
	"testing"

	"github.com/HtetLinMaung/pytrueface/internal/config"
	"github.com/HtetLinMaung/pytrueface/internal/extractor/deepface"
	"github.com/HtetLinMaung/pytrueface/internal/extractor/mock"
)

func TestNewExtractor_DeepFace(t *testing.T) {
	tests := []struct {
		name          string
		extractorType string
		extractorURL  string
	}{
		{
			name:          "explicit deepface extractor",
			extractorType: "deepface",
			extractorURL:  "http://localhost:5005",
		},
		{
			name:          "empty type defaults to deepface",
			extractorType: "",
			extractorURL:  "http://localhost:5005",
		},
		{
			name:          "custom extractor URL",
			extractorType: "deepface",
			extractorURL:  "http://custom-host:8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				ExtractorType: tt.extractorType,
				ExtractorURL:  tt.extractorURL,
				EmbeddingDim:  128,
			}

			e, err := NewExtractor(cfg)
			if err != nil {
				t.Fatalf("NewExtractor() error = %v", err)
			}

			if _, ok := e.(*deepface.Extractor); !ok {
				t.Errorf("NewExtractor() returned type %T, want *deepface.Extractor", e)
			}
		})
	}
}

func TestNewExtractor_Mock(t *testing.T) {
	cfg := &config.Config{
		ExtractorType: "mock",
		EmbeddingDim:  128,
	}

	e, err := NewExtractor(cfg)
	if err != nil {
		t.Fatalf("NewExtractor() error = %v", err)
	}

	if _, ok := e.(*mock.Extractor); !ok {
		t.Errorf("NewExtractor() returned type %T, want *mock.Extractor", e)
	}
}

func TestNewExtractor_Unknown(t *testing.T) {
	cfg := &config.Config{
		ExtractorType: "dlib",
	}

	if _, err := NewExtractor(cfg); err == nil {
		t.Error("NewExtractor() expected error for unknown extractor type")
	}
}
