package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/rela-go-api/internal/dto"
	"github.com/noah-isme/rela-go-api/internal/service"
	"github.com/noah-isme/rela-go-api/internal/utils"
)

// MetricsHandler exposes the organization metrics endpoints. Responses are
// cached here, on the caller side; the engine itself always recomputes.
type MetricsHandler struct {
	service  service.MetricsService
	cache    *redis.Client
	cacheTTL time.Duration
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewMetricsHandler constructs the handler.
func NewMetricsHandler(svc service.MetricsService, cache *redis.Client, ttl time.Duration, validate *validator.Validate, logger zerolog.Logger) *MetricsHandler {
	return &MetricsHandler{
		service:  svc,
		cache:    cache,
		cacheTTL: ttl,
		validate: validate,
		logger:   logger.With().Str("component", "metrics_handler").Logger(),
	}
}

// Register attaches the metrics routes to the router group.
func (h *MetricsHandler) Register(router fiber.Router) {
	router.Get("/overview", h.overview)
	router.Get("/hours-trend", h.hoursTrend)
	router.Get("/participation", h.participation)
	router.Get("/events", h.eventPerformance)
	router.Get("/compliance", h.complianceStatus)
	router.Get("/engagement", h.engagement)
	router.Get("/top-volunteers", h.topVolunteers)
}

func (h *MetricsHandler) overview(c *fiber.Ctx) error {
	orgID, query, rng, err := h.parseRequest(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	key := h.cacheKey("overview", orgID, query)
	var response dto.OverviewResponse
	if h.cached(c.Context(), key, &response) {
		return utils.SendSuccess(c, "organization overview", response)
	}

	response, err = h.service.Overview(c.Context(), orgID, rng)
	if err != nil {
		return h.respondError(c, err, "failed to compute overview")
	}

	h.store(c.Context(), key, response)
	return utils.SendSuccess(c, "organization overview", response)
}

func (h *MetricsHandler) hoursTrend(c *fiber.Ctx) error {
	orgID, query, rng, err := h.parseRequest(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	groupBy, err := service.ParseGroupBy(query.GroupBy)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	key := h.cacheKey("hours-trend", orgID, query)
	var response dto.HoursTrendResponse
	if h.cached(c.Context(), key, &response) {
		return utils.SendSuccess(c, "hours trend", response)
	}

	response, err = h.service.HoursTrend(c.Context(), orgID, derefRange(rng), groupBy)
	if err != nil {
		return h.respondError(c, err, "failed to compute hours trend")
	}

	h.store(c.Context(), key, response)
	return utils.SendSuccess(c, "hours trend", response)
}

func (h *MetricsHandler) participation(c *fiber.Ctx) error {
	orgID, query, rng, err := h.parseRequest(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	key := h.cacheKey("participation", orgID, query)
	var response dto.ParticipationResponse
	if h.cached(c.Context(), key, &response) {
		return utils.SendSuccess(c, "volunteer participation", response)
	}

	response, err = h.service.Participation(c.Context(), orgID, derefRange(rng))
	if err != nil {
		return h.respondError(c, err, "failed to compute participation")
	}

	h.store(c.Context(), key, response)
	return utils.SendSuccess(c, "volunteer participation", response)
}

func (h *MetricsHandler) eventPerformance(c *fiber.Ctx) error {
	orgID, query, rng, err := h.parseRequest(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	key := h.cacheKey("events", orgID, query)
	var response dto.EventPerformanceResponse
	if h.cached(c.Context(), key, &response) {
		return utils.SendSuccess(c, "event performance", response)
	}

	response, err = h.service.EventPerformance(c.Context(), orgID, derefRange(rng), query.Limit)
	if err != nil {
		return h.respondError(c, err, "failed to compute event performance")
	}

	h.store(c.Context(), key, response)
	return utils.SendSuccess(c, "event performance", response)
}

func (h *MetricsHandler) complianceStatus(c *fiber.Ctx) error {
	orgID, err := parseOrgID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	key := fmt.Sprintf("metrics:compliance:%d", orgID)
	var response dto.ComplianceStatusResponse
	if h.cached(c.Context(), key, &response) {
		return utils.SendSuccess(c, "compliance status", response)
	}

	response, err = h.service.ComplianceStatus(c.Context(), orgID)
	if err != nil {
		return h.respondError(c, err, "failed to compute compliance status")
	}

	h.store(c.Context(), key, response)
	return utils.SendSuccess(c, "compliance status", response)
}

func (h *MetricsHandler) engagement(c *fiber.Ctx) error {
	orgID, query, rng, err := h.parseRequest(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	key := h.cacheKey("engagement", orgID, query)
	var response dto.EngagementResponse
	if h.cached(c.Context(), key, &response) {
		return utils.SendSuccess(c, "engagement metrics", response)
	}

	response, err = h.service.Engagement(c.Context(), orgID, derefRange(rng))
	if err != nil {
		return h.respondError(c, err, "failed to compute engagement metrics")
	}

	h.store(c.Context(), key, response)
	return utils.SendSuccess(c, "engagement metrics", response)
}

func (h *MetricsHandler) topVolunteers(c *fiber.Ctx) error {
	orgID, query, rng, err := h.parseRequest(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	key := h.cacheKey("top-volunteers", orgID, query)
	var response dto.TopVolunteersResponse
	if h.cached(c.Context(), key, &response) {
		return utils.SendSuccess(c, "top volunteers", response)
	}

	response, err = h.service.TopVolunteers(c.Context(), orgID, derefRange(rng), query.Limit)
	if err != nil {
		return h.respondError(c, err, "failed to compute top volunteers")
	}

	h.store(c.Context(), key, response)
	return utils.SendSuccess(c, "top volunteers", response)
}

func (h *MetricsHandler) parseRequest(c *fiber.Ctx) (uint, dto.MetricsQueryRequest, *service.DateRange, error) {
	orgID, err := parseOrgID(c)
	if err != nil {
		return 0, dto.MetricsQueryRequest{}, nil, err
	}

	var query dto.MetricsQueryRequest
	if err := c.QueryParser(&query); err != nil {
		return 0, dto.MetricsQueryRequest{}, nil, fmt.Errorf("invalid query parameters")
	}
	if err := h.validate.Struct(query); err != nil {
		return 0, dto.MetricsQueryRequest{}, nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	rng, err := parseRange(query.From, query.To)
	if err != nil {
		return 0, dto.MetricsQueryRequest{}, nil, err
	}

	return orgID, query, rng, nil
}

func (h *MetricsHandler) cacheKey(operation string, orgID uint, query dto.MetricsQueryRequest) string {
	return fmt.Sprintf("metrics:%s:%d:%s:%s:%s:%d", operation, orgID, query.From, query.To, query.GroupBy, query.Limit)
}

func (h *MetricsHandler) cached(ctx context.Context, key string, dest interface{}) bool {
	if h.cache == nil {
		return false
	}

	payload, err := h.cache.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			h.logger.Warn().Err(err).Msg("failed to read metrics cache")
		}
		return false
	}
	return json.Unmarshal([]byte(payload), dest) == nil
}

func (h *MetricsHandler) store(ctx context.Context, key string, value interface{}) {
	if h.cache == nil {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := h.cache.Set(ctx, key, payload, h.cacheTTL).Err(); err != nil {
		h.logger.Warn().Err(err).Msg("failed to store metrics cache")
	}
}

func (h *MetricsHandler) respondError(c *fiber.Ctx, err error, message string) error {
	if errors.Is(err, service.ErrInvalidRange) || errors.Is(err, service.ErrMissingRange) {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	requestLogger(h.logger, c).Error().Err(err).Msg(message)
	return utils.SendError(c, fiber.StatusInternalServerError, message)
}

func parseOrgID(c *fiber.Ctx) (uint, error) {
	raw := c.Params("orgID")
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || parsed == 0 {
		return 0, fmt.Errorf("invalid organization id")
	}
	return uint(parsed), nil
}

// parseRange interprets from/to query values. Both empty means no range;
// supplying only one end is rejected. A bare date for "to" covers the whole
// day.
func parseRange(from, to string) (*service.DateRange, error) {
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)
	if from == "" && to == "" {
		return nil, nil
	}
	if from == "" || to == "" {
		return nil, fmt.Errorf("from and to must be supplied together")
	}

	start, _, err := parseTimestamp(from)
	if err != nil {
		return nil, fmt.Errorf("invalid from date: %v", err)
	}
	end, dateOnly, err := parseTimestamp(to)
	if err != nil {
		return nil, fmt.Errorf("invalid to date: %v", err)
	}
	if dateOnly {
		end = end.AddDate(0, 0, 1).Add(-time.Second)
	}

	return &service.DateRange{From: start, To: end}, nil
}

func parseTimestamp(value string) (time.Time, bool, error) {
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, false, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, false, err
	}
	return parsed, true, nil
}

func derefRange(rng *service.DateRange) service.DateRange {
	if rng == nil {
		return service.DateRange{}
	}
	return *rng
}
