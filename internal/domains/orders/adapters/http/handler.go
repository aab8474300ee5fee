// Package orderhttp exposes the order coordinator over gin HTTP transport.
package orderhttp

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bookhaven/order-service/internal/domains/orders/ports"
	sharederrors "github.com/bookhaven/order-service/internal/shared/errors"
)

// API wires HTTP transport with the orders bounded context service.
type API struct {
	service   ports.Service
	responder *sharederrors.ChainedResponder
}

// NewAPI creates an API backed by the provided service.
func NewAPI(service ports.Service) *API {
	return &API{
		service:   service,
		responder: sharederrors.NewChainedResponder("", problemFromError),
	}
}

// Register mounts the order routes on the given router.
func (api *API) Register(r gin.IRouter) {
	r.POST("/order/place/:userId", api.PlaceOrder)
	r.GET("/order/:orderId", api.GetOrder)
	r.GET("/order/:orderId/bookings", api.GetOrderBookings)
	r.GET("/order/user/:userId/bookings", api.GetUserBookings)
	r.DELETE("/order/:orderId", api.CancelOrder)
	r.DELETE("/order/user/:userId", api.CancelUserOrders)
}

// Post /order/place/:userId
// Place an order for the given user.
func (api *API) PlaceOrder(c *gin.Context) {
	userID, ok := api.parseIDParam(c, "userId")
	if !ok {
		return
	}
	var payload []OrderLineRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	total, err := api.service.PlaceOrder(c.Request.Context(), userID, toOrderLines(payload))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, PlaceOrderResponse{TotalAmount: total})
}

// Get /order/:orderId
// Find an order by ID.
func (api *API) GetOrder(c *gin.Context) {
	orderID, ok := api.parseIDParam(c, "orderId")
	if !ok {
		return
	}
	order, err := api.service.FindOrder(c.Request.Context(), orderID)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// Get /order/:orderId/bookings
// List the bookings recorded for one order.
func (api *API) GetOrderBookings(c *gin.Context) {
	orderID, ok := api.parseIDParam(c, "orderId")
	if !ok {
		return
	}
	bookings, err := api.service.ListBookingsForOrder(c.Request.Context(), orderID)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingListResponse(bookings))
}

// Get /order/user/:userId/bookings
// List bookings grouped per order for one user.
func (api *API) GetUserBookings(c *gin.Context) {
	userID, ok := api.parseIDParam(c, "userId")
	if !ok {
		return
	}
	perOrder, err := api.service.ListBookingsForUser(c.Request.Context(), userID)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	response := make([][]BookingResponse, 0, len(perOrder))
	for _, bookings := range perOrder {
		response = append(response, toBookingListResponse(bookings))
	}
	c.JSON(http.StatusOK, response)
}

// Delete /order/:orderId
// Cancel a single order and release its booked stock.
func (api *API) CancelOrder(c *gin.Context) {
	orderID, ok := api.parseIDParam(c, "orderId")
	if !ok {
		return
	}
	if err := api.service.RemoveOrder(c.Request.Context(), orderID); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete /order/user/:userId
// Cancel every order of one user.
func (api *API) CancelUserOrders(c *gin.Context) {
	userID, ok := api.parseIDParam(c, "userId")
	if !ok {
		return
	}
	if err := api.service.RemoveAllOrdersOfUser(c.Request.Context(), userID); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (api *API) parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		api.responder.BadRequest(c, "invalid "+name+" path parameter")
		return 0, false
	}
	return id, true
}
