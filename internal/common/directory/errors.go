package directory

import (
	"encoding/json"
	"net/http"

	"github.com/lafise/go-fp-transfer/internal/common"
	"github.com/lafise/go-fp-transfer/internal/models"
)

const defaultAPIErrorMessage = "API Error"

// APIError is returned for every non-2xx directory response.
// Problem is nil when the body is empty or not a problem document.
type APIError struct {
	Status  int
	Problem *models.ProblemDetails
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}

	var problem models.ProblemDetails
	if len(body) > 0 && json.Unmarshal(body, &problem) == nil {
		apiErr.Problem = &problem
	}

	return apiErr
}

func (e *APIError) Error() string {
	if e.Problem != nil && e.Problem.Title != "" {
		return e.Problem.Title
	}
	return defaultAPIErrorMessage
}

func (e *APIError) Is(target error) bool {
	return target == common.ErrDataNotFound && e.Status == http.StatusNotFound
}
