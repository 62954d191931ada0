package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pettycash-ledger/internal/api_gateway/service"
	"github.com/pettycash-ledger/internal/domain/report"
)

// ReportHandler serves rendered reports from the archive.
// Reports appear shortly after an export, once the worker has archived them.
type ReportHandler struct {
	reportService service.ReportService
	logger        *slog.Logger
}

func NewReportHandler(logger *slog.Logger, reportService service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

func (h *ReportHandler) List(c *gin.Context) {
	var pagination PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		RespondBadRequest(c, "Invalid pagination parameters: "+err.Error())
		return
	}

	docs, total, err := h.reportService.ListReports(c.Request.Context(), pagination.Page, pagination.PerPage)
	if err != nil {
		RespondServiceError(c, h.logger, err)
		return
	}
	if docs == nil {
		docs = []*report.Document{}
	}
	RespondWithPaginatedData(c, http.StatusOK, docs, pagination.Page, pagination.PerPage, int(total))
}

func (h *ReportHandler) GetBySnapshotID(c *gin.Context) {
	id, err := uuidParam(c, "snapshot_id")
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	doc, err := h.reportService.GetReport(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, h.logger, err)
		return
	}
	h.respondDocument(c, doc)
}

func (h *ReportHandler) GetByMonth(c *gin.Context) {
	month, err := monthParam(c)
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	doc, err := h.reportService.GetReportByMonth(c.Request.Context(), month)
	if err != nil {
		RespondServiceError(c, h.logger, err)
		return
	}
	h.respondDocument(c, doc)
}

// respondDocument sends the plain-text rendering when the client asks for text/plain
func (h *ReportHandler) respondDocument(c *gin.Context, doc *report.Document) {
	if c.NegotiateFormat(gin.MIMEJSON, gin.MIMEPlain) == gin.MIMEPlain {
		c.String(http.StatusOK, doc.Text)
		return
	}
	RespondOK(c, doc)
}
