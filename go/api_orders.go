package sokoserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	ordermapper "github.com/sokoyetu/soko-api/internal/domains/orders/adapters/http/mapper"
	ordertypes "github.com/sokoyetu/soko-api/internal/domains/orders/application/types"
	orderdomain "github.com/sokoyetu/soko-api/internal/domains/orders/domain"
	orderports "github.com/sokoyetu/soko-api/internal/domains/orders/ports"
	apierrors "github.com/sokoyetu/soko-api/internal/shared/errors"
	"github.com/sokoyetu/soko-api/internal/validation"
)

// OrdersAPI wires HTTP transport with the order lifecycle service and
// checkout orchestrator.
type OrdersAPI struct {
	service   orderports.Service
	checkout  orderports.CheckoutOrchestrator
	validator *validatorv10.Validate
}

// NewOrdersAPI creates an OrdersAPI backed by the provided service.
func NewOrdersAPI(service orderports.Service, checkout orderports.CheckoutOrchestrator) OrdersAPI {
	v := validation.New()
	v.RegisterStructValidation(checkoutStructValidation, CheckoutRequest{})
	return OrdersAPI{service: service, checkout: checkout, validator: v}
}

// CheckoutItemRequest is one requested cart line.
type CheckoutItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int32  `json:"quantity" validate:"gt=0"`
}

// CheckoutAddressRequest is the delivery destination payload.
type CheckoutAddressRequest struct {
	County    string `json:"county"`
	SubCounty string `json:"subCounty"`
	Street    string `json:"street"`
}

// CheckoutRequest is the order creation payload.
type CheckoutRequest struct {
	Items          []CheckoutItemRequest  `json:"items" validate:"required,min=1,dive"`
	DeliveryMethod string                 `json:"deliveryMethod" validate:"required,oneof=pickup delivery"`
	Address        CheckoutAddressRequest `json:"address"`
	DeliveryDate   *time.Time             `json:"deliveryDate"`
	Notes          string                 `json:"notes"`
}

// checkoutStructValidation requires a county when the order is delivered
// to a doorstep.
func checkoutStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(CheckoutRequest)
	if req.DeliveryMethod == string(orderdomain.DeliveryDoorstep) && req.Address.County == "" {
		sl.ReportError(req.Address.County, "address.county", "County", "required_for_delivery", "")
	}
}

// TransitionStatusRequest asks for a fulfillment transition.
type TransitionStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// TransitionPaymentRequest asks for a payment transition.
type TransitionPaymentRequest struct {
	PaymentStatus string `json:"paymentStatus" validate:"required"`
	MpesaCode     string `json:"mpesaCode"`
}

// Post /v1/orders
// Create an order from the cart
func (api *OrdersAPI) Checkout(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		respondProblem(c, apierrors.ErrUnauthorized)
		return
	}
	var payload CheckoutRequest
	if err := validation.BindAndValidate(c, &payload, api.validator); err != nil {
		return
	}
	items := make([]ordertypes.CheckoutItemInput, 0, len(payload.Items))
	for _, item := range payload.Items {
		items = append(items, ordertypes.CheckoutItemInput{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	input := ordertypes.CheckoutInput{
		Actor:          actor,
		Items:          items,
		DeliveryMethod: payload.DeliveryMethod,
		Address: ordertypes.AddressInput{
			County:    payload.Address.County,
			SubCounty: payload.Address.SubCounty,
			Street:    payload.Address.Street,
		},
		DeliveryDate:   payload.DeliveryDate,
		Notes:          payload.Notes,
		IdempotencyKey: c.GetHeader("Idempotency-Key"),
	}
	order, err := api.runCheckout(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ordermapper.FromDomainOrder(order))
}

func (api *OrdersAPI) runCheckout(ctx context.Context, input ordertypes.CheckoutInput) (*orderdomain.Order, error) {
	if api.checkout != nil {
		return api.checkout.Checkout(ctx, input)
	}
	return api.service.Checkout(ctx, input)
}

// Get /v1/orders
// List the actor's order board with live bucket counts
func (api *OrdersAPI) Board(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		respondProblem(c, apierrors.ErrUnauthorized)
		return
	}
	board, err := api.service.Board(c.Request.Context(), ordertypes.BoardInput{
		Actor:  actor,
		Filter: ordertypes.FilterKey(c.Query("filter")),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromBoard(board))
}

// Get /v1/orders/:orderId
// Fetch a single order the actor participates in
func (api *OrdersAPI) GetOrderById(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		respondProblem(c, apierrors.ErrUnauthorized)
		return
	}
	order, err := api.service.GetByID(c.Request.Context(), ordertypes.OrderIdentifier{
		ID:    c.Param("orderId"),
		Actor: actor,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrder(order))
}

// Patch /v1/orders/:orderId/status
// Request a fulfillment transition
func (api *OrdersAPI) TransitionStatus(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		respondProblem(c, apierrors.ErrUnauthorized)
		return
	}
	var payload TransitionStatusRequest
	if err := validation.BindAndValidate(c, &payload, api.validator); err != nil {
		return
	}
	order, err := api.service.TransitionStatus(c.Request.Context(), ordertypes.TransitionStatusInput{
		OrderID: c.Param("orderId"),
		Actor:   actor,
		Target:  orderdomain.Status(payload.Status),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrder(order))
}

// Patch /v1/orders/:orderId/payment
// Request a payment transition
func (api *OrdersAPI) TransitionPayment(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		respondProblem(c, apierrors.ErrUnauthorized)
		return
	}
	var payload TransitionPaymentRequest
	if err := validation.BindAndValidate(c, &payload, api.validator); err != nil {
		return
	}
	order, err := api.service.TransitionPayment(c.Request.Context(), ordertypes.TransitionPaymentInput{
		OrderID:   c.Param("orderId"),
		Actor:     actor,
		Target:    orderdomain.PaymentStatus(payload.PaymentStatus),
		MpesaCode: payload.MpesaCode,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrder(order))
}
