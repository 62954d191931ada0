package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pettycash-ledger/internal/api_gateway/service"
)

// SnapshotHandler handles HTTP requests for exported snapshots
type SnapshotHandler struct {
	snapshotService service.SnapshotService
	logger          *slog.Logger
}

func NewSnapshotHandler(logger *slog.Logger, snapshotService service.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{
		snapshotService: snapshotService,
		logger:          logger,
	}
}

func (h *SnapshotHandler) List(c *gin.Context) {
	var pagination PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		RespondBadRequest(c, "Invalid pagination parameters: "+err.Error())
		return
	}

	snapshots, total, err := h.snapshotService.ListSnapshots(c.Request.Context(), pagination.Page, pagination.PerPage)
	if err != nil {
		RespondServiceError(c, h.logger, err)
		return
	}

	responses := make([]SnapshotResponse, 0, len(snapshots))
	for _, s := range snapshots {
		responses = append(responses, mapSnapshotToResponse(s))
	}
	RespondWithPaginatedData(c, http.StatusOK, responses, pagination.Page, pagination.PerPage, total)
}

func (h *SnapshotHandler) GetByID(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	snapshot, err := h.snapshotService.GetSnapshot(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, h.logger, err)
		return
	}
	RespondOK(c, mapSnapshotToResponse(snapshot))
}

// Reopen restores the snapshot's month for editing and returns the removed snapshot
func (h *SnapshotHandler) Reopen(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	snapshot, err := h.snapshotService.ReopenForEdit(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, h.logger, err)
		return
	}
	RespondOK(c, mapSnapshotToResponse(snapshot))
}

func (h *SnapshotHandler) Delete(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	if err := h.snapshotService.DeleteSnapshot(c.Request.Context(), id); err != nil {
		RespondServiceError(c, h.logger, err)
		return
	}
	RespondNoContent(c)
}
