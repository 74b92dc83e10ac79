package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/linguadata/tagmerge/internal/merge"
	"github.com/linguadata/tagmerge/model"
	"github.com/linguadata/tagmerge/services"
)

// ListStrategiesHandler returns the catalog of known presets plus the
// dynamic count range.
func (api *API) ListStrategiesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"presets": api.resolver.List(),
		"dynamic_range": gin.H{
			"min": merge.MinCategories,
			"max": api.registry.Size(),
		},
	})
}

// ResolveStrategyHandler resolves a preset name or dynamic category count
// into a full strategy, including its partition.
func (api *API) ResolveStrategyHandler(c *gin.Context) {
	var req services.StrategyRequest
	if result := ValidateJSONBinding(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if result := ValidateStrategyRequest(req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	resolved, err := api.resolveStrategy(req)
	if err != nil {
		SendDomainError(c, "strategy resolution", err)
		return
	}

	c.JSON(http.StatusOK, resolved)
}

// ExportStrategyHandler returns a preset strategy as a YAML document.
func (api *API) ExportStrategyHandler(c *gin.Context) {
	name := c.Param("name")

	resolved, err := api.resolver.ResolvePreset(name)
	if err != nil {
		SendDomainError(c, "strategy export", err)
		return
	}

	out, err := api.resolver.Export(resolved)
	if err != nil {
		SendInternalError(c, "strategy export", err)
		return
	}

	c.Data(http.StatusOK, "application/x-yaml", out)
}

// resolveStrategy dispatches a strategy selector to the resolver. Preset
// wins when both fields are set.
func (api *API) resolveStrategy(req services.StrategyRequest) (*model.Strategy, error) {
	if req.Preset != "" {
		return api.resolver.ResolvePreset(req.Preset)
	}
	return api.resolver.ResolveCount(req.Categories)
}
