// Record inspection and maintenance HTTP handlers.
//
// This file exposes the operational endpoints:
//   - GET  /chats/{id}/records   (list a chat's stored dedup records, paginated)
//   - POST /maintenance/sweep    (run an on-demand retention sweep)
//
// The listing endpoint supports conditional responses (ETag) so dashboards
// polling a quiet chat get cheap 304s.
package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-dedup-backend/internal/domain"
	"github.com/tbourn/go-dedup-backend/internal/repo"
	"github.com/tbourn/go-dedup-backend/internal/utils"
)

// Pagination carries page metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListRecordsResponse wraps a page of dedup records and pagination metadata.
type ListRecordsResponse struct {
	Records    []domain.MessageRecord `json:"records"`
	Pagination Pagination             `json:"pagination"`
}

// SweepResponse reports the result of an on-demand retention sweep.
type SweepResponse struct {
	Deleted int64 `json:"deleted" example:"42"`
}

// clampPagination parses page/page_size from query parameters, applies sane
// defaults and caps, and returns the validated (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.ClampInt(utils.AtoiDefault(c.Query("page_size"), defaultPageSize), 1, maxPageSize)
	return
}

// ListRecords godoc
// @ID          listRecords
// @Summary     List a chat's dedup records
// @Description Returns a paginated list of stored records for the given chat,
// @Description newest first. Includes records that have aged out of the dedup
// @Description window but not yet crossed the retention horizon.
// @Tags        Records
// @Produce     json
//
// @Param       id         path   integer true  "Chat ID"
// @Param       page       query  int     false "Page number"    minimum(1) default(1)
// @Param       page_size  query  int     false "Items per page" minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListRecordsResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /chats/{id}/records [get]
func (h *Handlers) ListRecords(c *gin.Context) {
	ctx := c.Request.Context()

	chatID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || chatID == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "chat id must be a non-zero integer")
		return
	}

	// ETag pre-check (best effort).
	if h.db != nil {
		count, maxAt, serr := repo.RecordStats(ctx, h.db, chatID)
		if serr == nil {
			etag := fmt.Sprintf(`W/"records:%d:%d:%s"`, chatID, count, maxAt)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	page, pageSize := clampPagination(c)
	offset := (page - 1) * pageSize

	total, err := repo.CountRecords(ctx, h.db, chatID)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	items := []domain.MessageRecord{}
	if total > 0 {
		if items, err = repo.ListRecordsPage(ctx, h.db, chatID, offset, pageSize); err != nil {
			fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
			return
		}
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListRecordsResponse{
		Records: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// SweepNow godoc
// @ID          sweepNow
// @Summary     Run a retention sweep
// @Description Deletes every record older than the retention horizon, across
// @Description all chats, and reports how many rows were removed. The same
// @Description sweep also runs automatically after every processed message.
// @Tags        Maintenance
// @Produce     json
//
// @Success     200  {object} handlers.SweepResponse
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /maintenance/sweep [post]
func (h *Handlers) SweepNow(c *gin.Context) {
	deleted, err := h.svc.Sweep(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeSweepFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, SweepResponse{Deleted: deleted})
}
