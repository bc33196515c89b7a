package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	models "FXBench/internal/domain/models"
	"FXBench/internal/export"
	"FXBench/internal/usecase"
	xhttp "FXBench/pkg/http"
	xlogger "FXBench/pkg/logger"
)

// CompareHandler exposes the comparison pipeline and index catalog over HTTP.
type CompareHandler struct {
	logger      *xlogger.Logger
	comparisons *usecase.ComparisonService
	catalog     *usecase.CatalogService
}

func NewCompareHandler(logger *xlogger.Logger, comparisons *usecase.ComparisonService, catalog *usecase.CatalogService) *CompareHandler {
	return &CompareHandler{logger: logger, comparisons: comparisons, catalog: catalog}
}

func (h *CompareHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/compare", h.Compare)
	g.POST("/compare/export", h.Export)
	g.GET("/indices", h.Indices)
	g.POST("/indices/fetch", h.FetchIndices)
}

func (h *CompareHandler) Compare(c echo.Context) error {
	req := &models.CompareRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.comparisons.Compare(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("compare usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// Export runs the same pipeline and streams the result as a file. Defaults
// to the structured JSON document; ?format=csv returns the flat table.
func (h *CompareHandler) Export(c echo.Context) error {
	req := &models.CompareRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.comparisons.Compare(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("export usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	switch format := c.QueryParam("format"); format {
	case "csv":
		c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="exchange_comparison.csv"`)
		c.Response().WriteHeader(http.StatusOK)
		return export.WriteCSV(c.Response(), res.Exchanges)
	case "", "json":
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="exchange_comparison.json"`)
		return c.JSON(http.StatusOK, export.BuildDocument(res))
	default:
		return xhttp.BadRequestResponse(c, map[string]string{"format": "must be csv or json"})
	}
}

func (h *CompareHandler) Indices(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.catalog.List())
}

func (h *CompareHandler) FetchIndices(c echo.Context) error {
	req := &models.FetchIndicesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.catalog.Fetch(c.Request().Context(), req.Keys, req.Year)
	if err != nil {
		h.logger.Error("fetch indices usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}
