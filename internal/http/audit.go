package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/resumoteca/resumoteca/internal/entities"
)

// AuditController exposes the admin audit trail.
type AuditController struct {
	reader AuditReader
}

func NewAuditController(reader AuditReader) *AuditController {
	return &AuditController{reader: reader}
}

// GetEvents handles GET /api/admin/audit. Supports limit/offset pagination
// and an optional ?type=book|auth filter. Events come back newest-first.
func (controller *AuditController) GetEvents(c *gin.Context) {
	limit, offset := parsePagination(c, 50)

	var (
		events []entities.AuditEvent
		total  int64
		err    error
	)

	if eventType := c.Query("type"); eventType != "" {
		events, total, err = controller.reader.GetEventsByType(entities.AuditEventType(eventType), limit, offset)
	} else {
		events, total, err = controller.reader.GetEvents(limit, offset)
	}
	if err != nil {
		respondInternalError(c, err, "list audit events")
		return
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:    events,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(events)) < total,
	})
}
