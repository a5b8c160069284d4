package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"zellalite/internal/auth"
	"zellalite/internal/models"
	"zellalite/internal/repository"
	"zellalite/internal/service"
)

type TradeHandler struct {
	Trades   *service.TradeService
	Importer *service.ImportService
	Logger   *zap.Logger
}

func (h *TradeHandler) Register(r gin.IRoutes) {
	r.GET("/api/trades", h.list)
	r.POST("/api/trades", h.create)
	r.GET("/api/trades/:id", h.get)
	r.PATCH("/api/trades/:id", h.update)
	r.DELETE("/api/trades/:id", h.remove)
	r.POST("/api/trades/:id/tags", h.setTags)
	r.DELETE("/api/trades/:id/tags/:tag_id", h.removeTag)
	r.POST("/api/trades/import", h.importCSV)
}

// tradeView flattens the tag join rows into plain tags for serialization.
type tradeView struct {
	*models.Trade
	Tags []models.Tag `json:"tags"`
}

func viewTrade(trade *models.Trade) tradeView {
	tags := make([]models.Tag, 0, len(trade.TradeTags))
	for _, link := range trade.TradeTags {
		tags = append(tags, link.Tag)
	}
	return tradeView{Trade: trade, Tags: tags}
}

// @Summary List trades
// @Tags trades
// @Param symbol query string false "instrument symbol"
// @Param status query string false "open|closed"
// @Param from query string false "RFC3339 opened-at lower bound"
// @Param to query string false "RFC3339 opened-at upper bound"
// @Success 200 {object} handler.apiResponse
// @Router /api/trades [get]
func (h *TradeHandler) list(c *gin.Context) {
	params := repository.ListTradesParams{
		UserID:   auth.UserID(c),
		Limit:    intQuery(c, "limit", 20),
		Offset:   intQuery(c, "offset", 0),
		Symbol:   strQueryPtr(c, "symbol"),
		From:     timeQueryPtr(c, "from"),
		To:       timeQueryPtr(c, "to"),
		Strategy: strQueryPtr(c, "strategy"),
		TagIDs:   uint64ListQuery(c, "tags"),
		OrderBy:  "opened_at",
		Asc:      boolPtr(false),
	}
	if raw := strQueryPtr(c, "status"); raw != nil {
		status, err := models.ParseStatus(*raw)
		if err != nil {
			Error(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		params.Status = &status
	}
	items, total, err := h.Trades.List(c.Request.Context(), params)
	if err != nil {
		ServiceError(c, err)
		return
	}
	views := make([]tradeView, 0, len(items))
	for i := range items {
		views = append(views, viewTrade(&items[i]))
	}
	Ok(c, views, paginationMeta(params.Limit, params.Offset, total))
}

type instrumentRequest struct {
	Symbol    string `json:"symbol" binding:"required"`
	AssetType string `json:"asset_type"`
}

type executionRequest struct {
	Side      string    `json:"side" binding:"required"`
	Qty       float64   `json:"qty" binding:"required"`
	Price     float64   `json:"price" binding:"required"`
	Timestamp time.Time `json:"timestamp" binding:"required"`
}

type createTradeRequest struct {
	Instrument instrumentRequest  `json:"instrument" binding:"required"`
	Direction  string             `json:"direction" binding:"required"`
	Strategy   *string            `json:"strategy"`
	OpenedAt   time.Time          `json:"opened_at" binding:"required"`
	ClosedAt   *time.Time         `json:"closed_at"`
	Status     string             `json:"status"`
	Fees       float64            `json:"fees"`
	Notes      *string            `json:"notes"`
	Executions []executionRequest `json:"executions"`
	DryRun     bool               `json:"dry_run"`
}

// @Summary Create a trade with its executions
// @Tags trades
// @Accept json
// @Success 201 {object} handler.apiResponse
// @Router /api/trades [post]
func (h *TradeHandler) create(c *gin.Context) {
	var req createTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	input, err := buildTradeInput(req)
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	trade, err := h.Trades.Create(c.Request.Context(), auth.UserID(c), input, req.DryRun)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, viewTrade(trade))
}

func buildTradeInput(req createTradeRequest) (service.TradeInput, error) {
	direction, err := models.ParseDirection(req.Direction)
	if err != nil {
		return service.TradeInput{}, err
	}
	assetType := models.AssetEquity
	if req.Instrument.AssetType != "" {
		if assetType, err = models.ParseAssetType(req.Instrument.AssetType); err != nil {
			return service.TradeInput{}, err
		}
	}
	status := models.StatusOpen
	if req.Status != "" {
		if status, err = models.ParseStatus(req.Status); err != nil {
			return service.TradeInput{}, err
		}
	}
	input := service.TradeInput{
		Symbol:    req.Instrument.Symbol,
		AssetType: assetType,
		Direction: direction,
		Strategy:  req.Strategy,
		Notes:     req.Notes,
		OpenedAt:  req.OpenedAt,
		ClosedAt:  req.ClosedAt,
		Status:    status,
		Fees:      req.Fees,
	}
	for _, e := range req.Executions {
		side, err := models.ParseSide(e.Side)
		if err != nil {
			return service.TradeInput{}, err
		}
		input.Executions = append(input.Executions, service.ExecutionInput{
			Side:      side,
			Qty:       e.Qty,
			Price:     e.Price,
			Timestamp: e.Timestamp,
		})
	}
	return input, nil
}

// @Summary Fetch one trade
// @Tags trades
// @Success 200 {object} handler.apiResponse
// @Router /api/trades/{id} [get]
func (h *TradeHandler) get(c *gin.Context) {
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	trade, err := h.Trades.Get(c.Request.Context(), auth.UserID(c), id)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, viewTrade(trade), nil)
}

type updateTradeRequest struct {
	Strategy *string    `json:"strategy"`
	OpenedAt *time.Time `json:"opened_at"`
	ClosedAt *time.Time `json:"closed_at"`
	Status   *string    `json:"status"`
	Fees     *float64   `json:"fees"`
	Notes    *string    `json:"notes"`
}

// @Summary Patch trade fields
// @Tags trades
// @Accept json
// @Success 200 {object} handler.apiResponse
// @Router /api/trades/{id} [patch]
func (h *TradeHandler) update(c *gin.Context) {
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	var req updateTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	params := service.TradeUpdateParams{
		Strategy: req.Strategy,
		OpenedAt: req.OpenedAt,
		ClosedAt: req.ClosedAt,
		Fees:     req.Fees,
		Notes:    req.Notes,
	}
	if req.Status != nil {
		status, err := models.ParseStatus(*req.Status)
		if err != nil {
			Error(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		params.Status = &status
	}
	trade, err := h.Trades.Update(c.Request.Context(), auth.UserID(c), id, params)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, viewTrade(trade), nil)
}

// @Summary Delete a trade and everything it owns
// @Tags trades
// @Success 200 {object} handler.apiResponse
// @Router /api/trades/{id} [delete]
func (h *TradeHandler) remove(c *gin.Context) {
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	if err := h.Trades.Delete(c.Request.Context(), auth.UserID(c), id); err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, gin.H{"deleted": id}, nil)
}

type assignTagsRequest struct {
	TagIDs []uint64 `json:"tag_ids"`
}

// @Summary Replace the trade's tag set
// @Tags trades
// @Accept json
// @Success 200 {object} handler.apiResponse
// @Router /api/trades/{id}/tags [post]
func (h *TradeHandler) setTags(c *gin.Context) {
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	var req assignTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	trade, err := h.Trades.AssignTags(c.Request.Context(), auth.UserID(c), id, req.TagIDs)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, viewTrade(trade), nil)
}

// @Summary Detach one tag from a trade
// @Tags trades
// @Success 200 {object} handler.apiResponse
// @Router /api/trades/{id}/tags/{tag_id} [delete]
func (h *TradeHandler) removeTag(c *gin.Context) {
	id := uint64Param(c, "id")
	tagID := uint64Param(c, "tag_id")
	if id == 0 || tagID == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	trade, err := h.Trades.RemoveTag(c.Request.Context(), auth.UserID(c), id, tagID)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, viewTrade(trade), nil)
}

// @Summary Import trades from CSV
// @Tags trades
// @Accept multipart/form-data
// @Param file formData file true "CSV file"
// @Param dry_run query bool false "validate without committing (default true)"
// @Success 200 {object} handler.apiResponse
// @Router /api/trades/import [post]
func (h *TradeHandler) importCSV(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		Error(c, http.StatusBadRequest, "file is required", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		Error(c, http.StatusBadRequest, "cannot read file", nil)
		return
	}
	defer file.Close()

	dryRun := boolQueryDefault(c, "dry_run", true)
	if v, ok := c.GetPostForm("dry_run"); ok {
		dryRun = v == "true" || v == "1"
	}

	report, err := h.Importer.Import(c.Request.Context(), auth.UserID(c), file, dryRun)
	if err != nil {
		ServiceError(c, err)
		return
	}
	if h.Logger != nil && len(report.Errors) > 0 {
		h.Logger.Warn("import had failing groups",
			zap.Int("errors", len(report.Errors)),
			zap.Int("created", report.Created),
		)
	}
	Ok(c, report, nil)
}
