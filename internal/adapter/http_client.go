package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/kiranraju/possync/internal/config"
	"github.com/kiranraju/possync/internal/logger"
	"github.com/kiranraju/possync/models"
)

type httpServerAdapter struct {
	client   *resty.Client
	deviceID string
	logger   *logger.Logger

	mu    sync.RWMutex
	token string
}

// NewHTTPServerAdapter constructs the resty-backed remote API client. The
// bearer credential from cfg.App.Token (if any) is installed immediately;
// the external auth collaborator may replace it later via SetToken.
func NewHTTPServerAdapter(cfg config.Adapter, app config.App, log *logger.Logger) (ServerAdapter, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("adapter base URL is required")
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = config.DefaultRequestTimeout
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout)

	a := &httpServerAdapter{
		client:   cli,
		deviceID: app.DeviceID,
		logger:   log,
	}
	a.SetToken(app.Token)

	return a, nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// TokenExpired reports whether the installed credential is a JWT whose exp
// claim has passed. The token is treated as opaque otherwise: a non-JWT or
// claim-less token is never considered expired here, the server stays the
// authority via 401.
func (h *httpServerAdapter) TokenExpired(now time.Time) bool {
	tokenString := h.Token()
	if tokenString == "" {
		return false
	}

	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.Time.Before(now)
}

func (h *httpServerAdapter) Ping(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Get("/health")
	if err != nil {
		return fmt.Errorf("health probe request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) SyncCategories(ctx context.Context, ops []models.SyncOperation) (models.SyncResponse, error) {
	return h.syncBatch(ctx, "/categories/sync", ops)
}

func (h *httpServerAdapter) SyncItems(ctx context.Context, ops []models.SyncOperation) (models.SyncResponse, error) {
	return h.syncBatch(ctx, "/items/sync", ops)
}

func (h *httpServerAdapter) syncBatch(ctx context.Context, path string, ops []models.SyncOperation) (models.SyncResponse, error) {
	req := models.SyncRequest{Operations: ops, DeviceID: h.deviceID}

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(path)
	if err != nil {
		return models.SyncResponse{}, fmt.Errorf("batch sync request %s: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SyncResponse{}, err
	}

	var sr models.SyncResponse
	if err = json.Unmarshal(resp.Body(), &sr); err != nil {
		return models.SyncResponse{}, fmt.Errorf("decode batch sync response %s: %w", path, err)
	}

	return sr, nil
}

func (h *httpServerAdapter) UploadBills(ctx context.Context, bills []models.BackupBill) (int, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(bills).
		Post("/backup/sync")
	if err != nil {
		return 0, fmt.Errorf("upload bills request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return 0, err
	}

	var out struct {
		Synced int `json:"synced"`
	}
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return 0, fmt.Errorf("decode upload bills response: %w", err)
	}

	return out.Synced, nil
}

func (h *httpServerAdapter) DownloadBills(ctx context.Context, limit int) ([]models.BackupBill, error) {
	resp, err := h.authedRequest(ctx).
		SetQueryParam("limit", strconv.Itoa(limit)).
		Get("/backup/sync")
	if err != nil {
		return nil, fmt.Errorf("download bills request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var bills []models.BackupBill
	if err = json.Unmarshal(resp.Body(), &bills); err != nil {
		return nil, fmt.Errorf("decode download bills response: %w", err)
	}

	return bills, nil
}

func (h *httpServerAdapter) DownloadCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := h.downloadList(ctx, "/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (h *httpServerAdapter) DownloadItems(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := h.downloadList(ctx, "/items", &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (h *httpServerAdapter) DownloadInventory(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := h.downloadList(ctx, "/inventory", &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (h *httpServerAdapter) downloadList(ctx context.Context, path string, dest any) error {
	resp, err := h.authedRequest(ctx).Get(path)
	if err != nil {
		return fmt.Errorf("download request %s: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	if err = json.Unmarshal(resp.Body(), dest); err != nil {
		return fmt.Errorf("decode download response %s: %w", path, err)
	}
	return nil
}

func (h *httpServerAdapter) GetInventoryItem(ctx context.Context, id string) (models.InventoryItem, error) {
	resp, err := h.authedRequest(ctx).Get("/inventory/" + id)
	if err != nil {
		return models.InventoryItem{}, fmt.Errorf("get inventory item request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.InventoryItem{}, err
	}

	var item models.InventoryItem
	if err = json.Unmarshal(resp.Body(), &item); err != nil {
		return models.InventoryItem{}, fmt.Errorf("decode inventory item response: %w", err)
	}

	return item, nil
}

func (h *httpServerAdapter) CreateInventoryItem(ctx context.Context, item models.InventoryItem) (models.InventoryItem, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(item).
		Post("/inventory")
	if err != nil {
		return models.InventoryItem{}, fmt.Errorf("create inventory item request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.InventoryItem{}, err
	}

	var created models.InventoryItem
	if err = json.Unmarshal(resp.Body(), &created); err != nil {
		return models.InventoryItem{}, fmt.Errorf("decode create inventory response: %w", err)
	}

	return created, nil
}

func (h *httpServerAdapter) UpdateInventoryItem(ctx context.Context, item models.InventoryItem) (models.InventoryItem, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(item).
		Patch("/inventory/" + item.ID)
	if err != nil {
		return models.InventoryItem{}, fmt.Errorf("update inventory item request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.InventoryItem{}, err
	}

	var updated models.InventoryItem
	if err = json.Unmarshal(resp.Body(), &updated); err != nil {
		return models.InventoryItem{}, fmt.Errorf("decode update inventory response: %w", err)
	}

	return updated, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode() == http.StatusNotFound {
		return ErrNotFound
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}
	return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
}
