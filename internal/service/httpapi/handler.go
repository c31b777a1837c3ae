package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/confirmation"
	"github.com/vladislavdragonenkov/storefront/internal/service/orders"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
	maxBodyBytes     = 1 << 20

	liveMessage         = "confirm-order is live!"
	sentMessage         = "Notification sent!"
	missingFieldsMsg    = "Missing token or product_id"
	productNotFoundMsg  = "Product not found"
	invalidBodyMsg      = "Invalid JSON body"
	dispatchFailedMsg   = "Failed to send notification"
	internalErrorMsg    = "Internal server error"
	orderWriteFailedMsg = "Failed to record order"
)

// Confirmer подтверждает заказ push-уведомлением.
type Confirmer interface {
	Confirm(ctx context.Context, req confirmation.Request) (domain.DeliveryReceipt, error)
}

// Catalog отдаёт товары витрины.
type Catalog interface {
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// OrderRecorder записывает и перечисляет заказы.
type OrderRecorder interface {
	CreateOrder(ctx context.Context, req orders.CreateOrderRequest) (domain.Order, error)
	ListOrders(ctx context.Context, limit int) ([]domain.Order, error)
}

// Handler обслуживает HTTP API витрины.
type Handler struct {
	confirmer  Confirmer
	catalog    Catalog
	orders     OrderRecorder
	deliveries domain.DeliveryLog
	dispatcher domain.PushDispatcher
	logger     *log.Entry
}

// Dependencies собирает зависимости HTTP API.
type Dependencies struct {
	Confirmer  Confirmer
	Catalog    Catalog
	Orders     OrderRecorder
	Deliveries domain.DeliveryLog
	Dispatcher domain.PushDispatcher
	Logger     *log.Entry
}

// NewHandler создаёт обработчики HTTP API.
func NewHandler(deps Dependencies) *Handler {
	logger := deps.Logger
	if logger == nil {
		logger = log.New().WithField("component", "http-api")
	}
	return &Handler{
		confirmer:  deps.Confirmer,
		catalog:    deps.Catalog,
		orders:     deps.Orders,
		deliveries: deps.Deliveries,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// confirmOrderRequest принимает и новые имена полей, и имена из исходной схемы витрины.
type confirmOrderRequest struct {
	NotificationAddress string `json:"notificationAddress"`
	ProductID           string `json:"productId"`
	FCMToken            string `json:"fcm_token"`
	LegacyProductID     string `json:"product_id"`
}

func (r confirmOrderRequest) toRequest() confirmation.Request {
	req := confirmation.Request{
		NotificationAddress: strings.TrimSpace(r.NotificationAddress),
		ProductID:           strings.TrimSpace(r.ProductID),
	}
	if req.NotificationAddress == "" {
		req.NotificationAddress = strings.TrimSpace(r.FCMToken)
	}
	if req.ProductID == "" {
		req.ProductID = strings.TrimSpace(r.LegacyProductID)
	}
	return req
}

// ConfirmOrderLive handles GET /confirm-order
func (h *Handler) ConfirmOrderLive(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Success: true, Message: liveMessage}, h.logger)
}

// ConfirmOrder handles POST /confirm-order
func (h *Handler) ConfirmOrder(w http.ResponseWriter, r *http.Request) {
	var body confirmOrderRequest
	if err := decodeJSON(w, r, &body); err != nil {
		h.logger.WithError(err).Info("confirm-order: malformed body")
		writeFailure(w, http.StatusBadRequest, invalidBodyMsg, h.logger)
		return
	}

	receipt, err := h.confirmer.Confirm(r.Context(), body.toRequest())
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, statusResponse{Success: true, Message: sentMessage, MessageID: receipt.MessageID}, h.logger)
	case domain.IsBadRequest(err):
		writeFailure(w, http.StatusBadRequest, missingFieldsMsg, h.logger)
	case domain.IsNotFound(err):
		writeFailure(w, http.StatusNotFound, productNotFoundMsg, h.logger)
	case domain.IsDispatchFailure(err):
		writeServerError(w, dispatchFailedMsg, h.logger)
	default:
		h.logger.WithError(err).Error("confirm-order: unexpected failure")
		writeServerError(w, internalErrorMsg, h.logger)
	}
}

type sendNotificationRequest struct {
	Token   string `json:"token"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Link    string `json:"link"`
}

// SendNotification handles POST /send-notification
// Отправляет произвольное тестовое уведомление одному клиенту.
func (h *Handler) SendNotification(w http.ResponseWriter, r *http.Request) {
	var body sendNotificationRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeFailure(w, http.StatusBadRequest, invalidBodyMsg, h.logger)
		return
	}
	if strings.TrimSpace(body.Title) == "" {
		writeFailure(w, http.StatusBadRequest, domain.ErrMessageTitleRequired.Error(), h.logger)
		return
	}

	receipt, err := h.dispatcher.Dispatch(r.Context(), strings.TrimSpace(body.Token), domain.PushMessage{
		Title: body.Title,
		Body:  body.Message,
		Link:  body.Link,
	})
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, statusResponse{Success: true, Message: sentMessage, MessageID: receipt.MessageID}, h.logger)
	case domain.IsBadRequest(err):
		writeFailure(w, http.StatusBadRequest, "Missing token", h.logger)
	default:
		h.logger.WithError(err).Warn("send-notification failed")
		writeServerError(w, dispatchFailedMsg, h.logger)
	}
}

type productView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Price       string `json:"price"`
}

func toProductView(p domain.Product) productView {
	return productView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Price:       p.Price,
	}
}

// ListProducts handles GET /api/products
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		writeServerError(w, internalErrorMsg, h.logger)
		return
	}

	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, toProductView(p))
	}
	writeJSON(w, http.StatusOK, views, h.logger)
}

// GetProduct handles GET /api/products/{productId}
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.GetProduct(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		writeFailure(w, http.StatusNotFound, productNotFoundMsg, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, toProductView(product), h.logger)
}

type createOrderRequest struct {
	ProductID           string `json:"productId"`
	Name                string `json:"name"`
	Price               string `json:"price"`
	NotificationAddress string `json:"notificationAddress"`
}

type orderView struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Name      string    `json:"name,omitempty"`
	Price     string    `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
}

func toOrderView(o domain.Order) orderView {
	return orderView{
		ID:        o.ID,
		ProductID: o.ProductID,
		Name:      o.ProductName,
		Price:     o.Price,
		CreatedAt: o.CreatedAt,
	}
}

type createOrderResponse struct {
	Success bool      `json:"success"`
	Order   orderView `json:"order"`
}

// CreateOrder handles POST /api/orders
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var body createOrderRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeFailure(w, http.StatusBadRequest, invalidBodyMsg, h.logger)
		return
	}

	order, err := h.orders.CreateOrder(r.Context(), orders.CreateOrderRequest{
		ProductID:           body.ProductID,
		ProductName:         body.Name,
		Price:               body.Price,
		NotificationAddress: body.NotificationAddress,
	})
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, createOrderResponse{Success: true, Order: toOrderView(order)}, h.logger)
	case domain.IsBadRequest(err):
		writeFailure(w, http.StatusBadRequest, missingFieldsMsg, h.logger)
	default:
		writeServerError(w, orderWriteFailedMsg, h.logger)
	}
}

// ListOrders handles GET /api/orders
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	list, err := h.orders.ListOrders(r.Context(), limit)
	if err != nil {
		writeServerError(w, internalErrorMsg, h.logger)
		return
	}

	views := make([]orderView, 0, len(list))
	for _, o := range list {
		views = append(views, toOrderView(o))
	}
	writeJSON(w, http.StatusOK, views, h.logger)
}

type deliveryView struct {
	ID        string    `json:"id,omitempty"`
	ProductID string    `json:"productId"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Status    string    `json:"status"`
	MessageID string    `json:"messageId,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListDeliveries handles GET /api/deliveries
func (h *Handler) ListDeliveries(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	if h.deliveries == nil {
		writeJSON(w, http.StatusOK, []deliveryView{}, h.logger)
		return
	}

	entries, err := h.deliveries.List(r.Context(), limit)
	if err != nil {
		h.logger.WithError(err).Error("failed to list deliveries")
		writeServerError(w, internalErrorMsg, h.logger)
		return
	}

	views := make([]deliveryView, 0, len(entries))
	for _, d := range entries {
		views = append(views, deliveryView{
			ID:        d.ID,
			ProductID: d.ProductID,
			Title:     d.Title,
			Body:      d.Body,
			Status:    string(d.Status),
			MessageID: d.MessageID,
			Error:     d.Error,
			CreatedAt: d.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, views, h.logger)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return err
	}
	return nil
}

func parseLimit(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		return defaultListLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, errors.New("limit must be a positive integer")
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return limit, nil
}
