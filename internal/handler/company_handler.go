package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fleveque/company-lookup/internal/provider"
)

// CompanyHandler serves company lookups over HTTP using the same provider as the CLI.
type CompanyHandler struct {
	provider provider.CompanyProvider
	logger   *zap.Logger
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(p provider.CompanyProvider, logger *zap.Logger) *CompanyHandler {
	return &CompanyHandler{
		provider: p,
		logger:   logger,
	}
}

type companyQuery struct {
	Q string `form:"q" binding:"required"`
}

// GetCompany looks up a company by domain or LinkedIn URL.
// Route: GET /api/v1/companies?q=acme.com
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	var query companyQuery
	if err := c.ShouldBindQuery(&query); err != nil || strings.TrimSpace(query.Q) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "missing q: pass a website domain or LinkedIn company URL",
		})
		return
	}

	rec, err := h.provider.FindCompany(c.Request.Context(), query.Q)
	if err != nil {
		status, body := errorResponse(err)
		h.logger.Warn("company lookup failed",
			zap.String("provider", h.provider.Name()),
			zap.String("q", query.Q),
			zap.Int("status", status),
			zap.Error(err),
		)
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, rec)
}

// errorResponse maps a lookup failure to a status code and JSON body.
// Upstream failures are reported as gateway errors since this service is a proxy.
func errorResponse(err error) (int, gin.H) {
	var (
		httpErr   *provider.HTTPError
		decodeErr *provider.DecodeError
	)

	switch {
	case errors.Is(err, provider.ErrMissingCredential):
		return http.StatusServiceUnavailable, gin.H{"error": "lookup credential not configured"}
	case errors.Is(err, provider.ErrNotFound):
		return http.StatusNotFound, gin.H{"error": "company not found"}
	case errors.As(err, &httpErr):
		return http.StatusBadGateway, gin.H{
			"error":           "upstream HTTP error",
			"upstream_status": httpErr.StatusCode,
		}
	case errors.As(err, &decodeErr):
		return http.StatusBadGateway, gin.H{"error": "upstream returned invalid JSON"}
	case errors.Is(err, provider.ErrTimeout):
		return http.StatusGatewayTimeout, gin.H{"error": "upstream timed out"}
	case errors.Is(err, provider.ErrConnection):
		return http.StatusBadGateway, gin.H{"error": "could not connect to upstream"}
	default:
		return http.StatusBadGateway, gin.H{"error": "upstream request failed"}
	}
}
