package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
	"github.com/go-swagno/swagno/components/parameter"
)

// AddFaceResponse represents the response for a successful enrollment
type AddFaceResponse struct {
	Code     int    `json:"code" example:"200"`
	Message  string `json:"message" example:"Face encoding calculated and stored successfully"`
	Label    string `json:"label" example:"alice"`
	FileName string `json:"file_name" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// EncodeFaceResponse represents the response for a compute-only encoding
type EncodeFaceResponse struct {
	Code         int       `json:"code" example:"200"`
	Message      string    `json:"message" example:"Face encoding calculated successfully"`
	Label        string    `json:"label" example:"alice"`
	FaceEncoding []float64 `json:"face_encoding"`
}

// RecognizeFaceResponse represents the response for a successful recognition
type RecognizeFaceResponse struct {
	Code     int       `json:"code" example:"200"`
	Message  string    `json:"message" example:"Matching face found"`
	Label    string    `json:"label" example:"alice"`
	FaceData []float64 `json:"face_data"`
}

// SearchMatchData represents one ranked search result
type SearchMatchData struct {
	Label    string  `json:"label" example:"alice"`
	Distance float64 `json:"distance" example:"0.42"`
}

// SearchFaceResponse represents the response for a stored-face search
type SearchFaceResponse struct {
	Code    int               `json:"code" example:"200"`
	Message string            `json:"message" example:"Search completed"`
	Matches []SearchMatchData `json:"matches"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"No faces found in image."`
}

// EmptyResponse represents no content response (204)
type EmptyResponse struct{}

// HealthResponse represents the liveness probe response
type HealthResponse struct {
	Code    int    `json:"code" example:"200"`
	Message string `json:"message" example:"ok"`
}

// ReadyResponse represents the readiness probe response
type ReadyResponse struct {
	Code    int    `json:"code" example:"200"`
	Message string `json:"message" example:"ready"`
	Faces   int    `json:"faces" example:"42"`
}

func NewSwagger() *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "PyTrueFace API",
		Version:     "v1.0.0",
		Description: "Face enrollment and recognition API. Encodings are persisted to disk and Postgres and matched by Euclidean distance.",
		Host:        "localhost:3000",
	})

	endpoints := []*endpoint.EndPoint{
		// POST /addFace - Enroll a face
		endpoint.New(
			endpoint.POST,
			"/addFace",
			endpoint.WithTags("Faces"),
			endpoint.WithSummary("Enroll a face under a label"),
			endpoint.WithDescription("Computes the encoding for the single face in the uploaded image and persists it under the given label. Re-enrolling a label replaces its encoding."),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("label", parameter.Query, parameter.WithDescription("Label to store the encoding under")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(AddFaceResponse{}, "200", "Face enrolled successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: 400, Message: "No faces found in image."}, "400", "Bad Request"),
				response.New(ErrorResponse{Code: 500, Message: "Failed to store face encoding"}, "500", "Internal Server Error"),
			}),
		),

		// POST /encode-face - Compute encoding without storing
		endpoint.New(
			endpoint.POST,
			"/encode-face",
			endpoint.WithTags("Faces"),
			endpoint.WithSummary("Compute a face encoding"),
			endpoint.WithDescription("Computes the encoding for the single face in the uploaded image and returns it without persisting anything."),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("label", parameter.Query, parameter.WithDescription("Label echoed back in the response")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(EncodeFaceResponse{}, "200", "Encoding computed successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: 400, Message: "No faces found in image."}, "400", "Bad Request"),
				response.New(ErrorResponse{Code: 400, Message: "Multiple faces found in image."}, "400", "Bad Request"),
			}),
		),

		// POST /recognize-face - Match against a known set
		endpoint.New(
			endpoint.POST,
			"/recognize-face",
			endpoint.WithTags("Faces"),
			endpoint.WithSummary("Recognize a face"),
			endpoint.WithDescription("Matches the single face in the uploaded image against a known set. With encodings_url the set is fetched from that URL; otherwise the local store is used."),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("encodings_url", parameter.Query, parameter.WithDescription("Optional URL returning a JSON list of known encodings")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(RecognizeFaceResponse{}, "200", "Matching face found"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: 400, Message: "No matching face found."}, "400", "Bad Request"),
				response.New(ErrorResponse{Code: 500, Message: "Failed to fetch known encodings"}, "500", "Internal Server Error"),
			}),
		),

		// POST /search-face - Rank enrolled faces by distance
		endpoint.New(
			endpoint.POST,
			"/search-face",
			endpoint.WithTags("Faces"),
			endpoint.WithSummary("Search enrolled faces"),
			endpoint.WithDescription("Ranks enrolled faces by Euclidean distance to the single face in the uploaded image."),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.IntParam("limit", parameter.Query, parameter.WithDescription("Maximum number of results (1-50, default 10)")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(SearchFaceResponse{}, "200", "Search completed"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: 400, Message: "No faces found in image."}, "400", "Bad Request"),
			}),
		),

		// DELETE /faces/:label - Remove enrollments
		endpoint.New(
			endpoint.DELETE,
			"/faces/{label}",
			endpoint.WithTags("Faces"),
			endpoint.WithSummary("Delete enrollments for a label"),
			endpoint.WithDescription("Removes every stored encoding for the given label."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("label", parameter.Path, parameter.WithDescription("Label to remove")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(EmptyResponse{}, "204", "Enrollments removed"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: 404, Message: "Face not found"}, "404", "Not Found"),
			}),
		),

		// GET /health - Liveness probe
		endpoint.New(
			endpoint.GET,
			"/health",
			endpoint.WithTags("Health"),
			endpoint.WithSummary("Liveness probe"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(HealthResponse{}, "200", "Service is alive"),
			}),
		),

		// GET /ready - Readiness probe
		endpoint.New(
			endpoint.GET,
			"/ready",
			endpoint.WithTags("Health"),
			endpoint.WithSummary("Readiness probe"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(ReadyResponse{}, "200", "Service is ready"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: 503, Message: "database unavailable"}, "503", "Service Unavailable"),
			}),
		),
	}

	sw.AddEndpoints(endpoints)

	return sw
}
