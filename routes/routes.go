package routes

import (
	"net/http"
	"time"

	"clinicbook/handlers"
	"clinicbook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers the router wires up.
type HandlerBundle struct {
	Availability *handlers.AvailabilityHandler
	Booking      *handlers.BookingHandler
	Schedule     *handlers.ScheduleHandler
}

// RegisterRoutes attaches all endpoints to the router.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})

	api := r.Group("/api")
	org := api.Group("/organisations/:orgID")

	resource := org.Group("/resources/:resourceID")
	{
		resource.GET("/availability/day", hb.Availability.GetDayAvailabilityHandler)
		resource.GET("/availability/week", hb.Availability.GetWeekAvailabilityHandler)
		resource.GET("/windows", hb.Availability.GetBookableWindowsHandler)
		resource.GET("/status", hb.Availability.GetCurrentStatusHandler)

		resource.PUT("/availability/base", hb.Schedule.SetBaseAvailabilityHandler)
		resource.PUT("/availability/override", hb.Schedule.SetWeekOverrideHandler)
		resource.POST("/blocks", hb.Booking.BlockIntervalHandler)
	}

	org.GET("/services/:serviceID/windows", hb.Availability.GetAggregatedWindowsHandler)

	appointments := org.Group("/appointments")
	{
		appointments.POST("", hb.Booking.BookSlotHandler)
		appointments.PUT("/:appointmentID/reassign", hb.Booking.ReassignSlotHandler)
		appointments.PUT("/:appointmentID/reschedule", hb.Booking.RescheduleSlotHandler)
		appointments.DELETE("/:appointmentID", hb.Booking.ReleaseSlotHandler)
	}
}
