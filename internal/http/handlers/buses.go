package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hoponhub/internal/domain/models"
	"hoponhub/internal/http/middleware"
	"hoponhub/internal/services"
)

// InitDB wipes and reseeds the demo catalogue.
func InitDB(c *gin.Context) {
	svc := services.SeedService{RequestID: middleware.GetRequestID(c)}
	res, err := svc.Seed(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "init_failed", "Database initialization failed", nil)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Database initialized successfully", "seeded": res})
}

func SearchBuses(c *gin.Context) {
	q := models.SearchQuery{
		Origin:      c.Query("from"),
		Destination: c.Query("to"),
		Date:        c.Query("date"),
	}
	svc := services.SearchService{RequestID: middleware.GetRequestID(c)}
	buses, err := svc.Search(c.Request.Context(), q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if len(buses) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No buses found for this route", "buses": buses})
		return
	}
	c.JSON(http.StatusOK, gin.H{"buses": buses})
}

func GetSeats(c *gin.Context) {
	routeID, ok := paramID(c, "routeId")
	if !ok {
		return
	}
	list, err := services.SeatService{}.ListSeats(c.Request.Context(), routeID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
