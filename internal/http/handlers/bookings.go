package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hoponhub/internal/domain/models"
	"hoponhub/internal/http/middleware"
	"hoponhub/internal/services"
)

func CreateBooking(c *gin.Context) {
	var req models.BookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	rec, err := svc.Create(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":      "Booking created successfully",
		"booking_ids":  rec.BookingIDs,
		"passenger_id": rec.PassengerID,
		"total_price":  rec.TotalPrice,
	})
}

func GetBooking(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	b, err := services.BookingService{}.GetBooking(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

func ProcessPayment(c *gin.Context) {
	var req models.PaymentRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	svc := services.PaymentService{RequestID: middleware.GetRequestID(c)}
	conf, err := svc.Process(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment processed successfully", "confirmation": conf})
}
