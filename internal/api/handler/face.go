package handler

import (
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/HtetLinMaung/pytrueface/internal/domain"
)

const (
	maxImageSize = 10 * 1024 * 1024 // 10MB

	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

// FaceService interface for the service
type FaceService interface {
	Enroll(ctx context.Context, label string, image []byte) (*domain.EncodingRecord, error)
	Encode(ctx context.Context, image []byte) (domain.Embedding, error)
	Recognize(ctx context.Context, image []byte, known []domain.KnownFace) (*domain.KnownFace, error)
	KnownFaces() []domain.KnownFace
	Search(ctx context.Context, image []byte, limit int) ([]domain.SearchMatch, error)
	Remove(ctx context.Context, label string) error
}

// KnownSetFetcher retrieves a caller-supplied encoding list.
type KnownSetFetcher interface {
	Fetch(ctx context.Context, url string) ([]domain.KnownFace, error)
}

// FaceHandler handles face enrollment and recognition requests
type FaceHandler struct {
	service FaceService
	fetcher KnownSetFetcher
	logger  *slog.Logger
}

// NewFaceHandler creates a new FaceHandler instance
func NewFaceHandler(service FaceService, fetcher KnownSetFetcher, logger *slog.Logger) *FaceHandler {
	return &FaceHandler{
		service: service,
		fetcher: fetcher,
		logger:  logger,
	}
}

// AddFaceResponse response for the enrollment endpoint
type AddFaceResponse struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	Label    string `json:"label"`
	FileName string `json:"file_name"`
}

// EncodeFaceResponse response for the compute-only endpoint
type EncodeFaceResponse struct {
	Code         int              `json:"code"`
	Message      string           `json:"message"`
	Label        string           `json:"label"`
	FaceEncoding domain.Embedding `json:"face_encoding"`
}

// RecognizeFaceResponse response for the recognition endpoint
type RecognizeFaceResponse struct {
	Code     int              `json:"code"`
	Message  string           `json:"message"`
	Label    string           `json:"label"`
	FaceData domain.Embedding `json:"face_data"`
}

// SearchFaceResponse response for the stored-face search endpoint
type SearchFaceResponse struct {
	Code    int                  `json:"code"`
	Message string               `json:"message"`
	Matches []domain.SearchMatch `json:"matches"`
}

// AddFace POST /addFace?label=... - enroll a face under a label
func (h *FaceHandler) AddFace(c *fiber.Ctx) error {
	label, err := extractLabel(c)
	if err != nil {
		return err
	}

	imageBytes, err := extractImage(c)
	if err != nil {
		return err
	}

	rec, err := h.service.Enroll(c.Context(), label, imageBytes)
	if err != nil {
		return err
	}

	return c.JSON(AddFaceResponse{
		Code:     fiber.StatusOK,
		Message:  "Face encoding calculated and stored successfully",
		Label:    rec.Label,
		FileName: rec.FileName,
	})
}

// EncodeFace POST /encode-face?label=... - compute an encoding, no persistence
func (h *FaceHandler) EncodeFace(c *fiber.Ctx) error {
	label, err := extractLabel(c)
	if err != nil {
		return err
	}

	imageBytes, err := extractImage(c)
	if err != nil {
		return err
	}

	embedding, err := h.service.Encode(c.Context(), imageBytes)
	if err != nil {
		return err
	}

	return c.JSON(EncodeFaceResponse{
		Code:         fiber.StatusOK,
		Message:      "Face encoding calculated successfully",
		Label:        label,
		FaceEncoding: embedding,
	})
}

// RecognizeFace POST /recognize-face[?encodings_url=...] - match the
// uploaded image against a known set. With encodings_url the set is
// fetched from the caller's endpoint; without it the local store is used.
func (h *FaceHandler) RecognizeFace(c *fiber.Ctx) error {
	imageBytes, err := extractImage(c)
	if err != nil {
		return err
	}

	var known []domain.KnownFace
	if encodingsURL := strings.TrimSpace(c.Query("encodings_url")); encodingsURL != "" {
		known, err = h.fetcher.Fetch(c.Context(), encodingsURL)
		if err != nil {
			return err
		}
	} else {
		known = h.service.KnownFaces()
	}

	found, err := h.service.Recognize(c.Context(), imageBytes, known)
	if err != nil {
		return err
	}

	return c.JSON(RecognizeFaceResponse{
		Code:     fiber.StatusOK,
		Message:  "Matching face found",
		Label:    found.Label,
		FaceData: found.Encoding,
	})
}

// SearchFace POST /search-face?limit=... - rank enrolled faces by distance
func (h *FaceHandler) SearchFace(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultSearchLimit)
	if limit < 1 || limit > maxSearchLimit {
		limit = defaultSearchLimit
	}

	imageBytes, err := extractImage(c)
	if err != nil {
		return err
	}

	matches, err := h.service.Search(c.Context(), imageBytes, limit)
	if err != nil {
		return err
	}

	return c.JSON(SearchFaceResponse{
		Code:    fiber.StatusOK,
		Message: "Search completed",
		Matches: matches,
	})
}

// DeleteFace DELETE /faces/:label - remove every enrollment under a label
func (h *FaceHandler) DeleteFace(c *fiber.Ctx) error {
	label := strings.TrimSpace(c.Params("label"))
	if label == "" {
		return domain.ErrMissingLabel
	}

	if err := h.service.Remove(c.Context(), label); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// extractLabel reads the label from the query string, falling back to a
// form field.
func extractLabel(c *fiber.Ctx) (string, error) {
	label := strings.TrimSpace(c.Query("label"))
	if label == "" {
		label = strings.TrimSpace(c.FormValue("label"))
	}
	if label == "" {
		return "", domain.ErrMissingLabel
	}
	return label, nil
}

// extractImage reads the uploaded image from the multipart form. The
// upload field is "file", with "image" accepted as an alias.
func extractImage(c *fiber.Ctx) ([]byte, error) {
	file, err := c.FormFile("file")
	if err != nil {
		file, err = c.FormFile("image")
	}
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}

	if file.Size == 0 || file.Size > maxImageSize {
		return nil, domain.ErrInvalidImage
	}

	return readUpload(file)
}

func readUpload(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}
	defer func() {
		_ = f.Close()
	}()

	buf, err := io.ReadAll(f)
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}

	return buf, nil
}
