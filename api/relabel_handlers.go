package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/linguadata/tagmerge/internal/assign"
	"github.com/linguadata/tagmerge/model"
	"github.com/linguadata/tagmerge/services"
)

// RelabelRequest asks for a batch of records to be relabeled under a
// strategy.
type RelabelRequest struct {
	Strategy services.StrategyRequest `json:"strategy"`
	Records  []model.SentenceRecord   `json:"records"`
}

// RelabelResponse carries the relabeled records plus the skipped ones.
type RelabelResponse struct {
	Strategy string                `json:"strategy"`
	Records  []model.LabeledRecord `json:"records"`
	Skipped  []assign.Skip         `json:"skipped,omitempty"`
	Total    int                   `json:"total"`
}

// RelabelHandler relabels a batch of sentence records under the requested
// strategy. Records with unknown tags are skipped and reported, not fatal.
func (api *API) RelabelHandler(c *gin.Context) {
	var req RelabelRequest
	if result := ValidateJSONBinding(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if result := ValidateStrategyRequest(req.Strategy); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	if result := ValidateRecords(req.Records); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	resolved, err := api.resolveStrategy(req.Strategy)
	if err != nil {
		SendDomainError(c, "relabeling", err)
		return
	}

	batch := assign.ApplyAll(resolved, req.Records)

	c.JSON(http.StatusOK, RelabelResponse{
		Strategy: resolved.Name,
		Records:  batch.Records,
		Skipped:  batch.Skipped,
		Total:    len(batch.Records),
	})
}
