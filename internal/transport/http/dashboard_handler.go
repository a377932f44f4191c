package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/service"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/util"
)

func RegisterDashboard(e *echo.Echo, auth *service.AuthService, dashboard *service.DashboardService) {
	e.GET("/api/v1/admin/dashboard", func(c echo.Context) error {
		principal, ok, err := requirePrincipal(c)
		if !ok {
			return err
		}
		stats, err := dashboard.Stats(c.Request().Context(), principal)
		if err != nil {
			return writeError(c, err, "unable to load dashboard")
		}
		topRated := make([]util.Envelope, 0, len(stats.TopRated))
		for i := range stats.TopRated {
			topRated = append(topRated, buildDestinationResponse(&stats.TopRated[i]))
		}
		return c.JSON(http.StatusOK, util.Envelope{
			"counts": util.Envelope{
				"destinations":        stats.Destinations,
				"active_destinations": stats.ActiveDestinations,
				"users":               stats.Users,
				"trips":               stats.Trips,
				"bookings":            stats.Bookings,
				"pending_reviews":     stats.PendingReviews,
			},
			"top_rated": topRated,
		})
	}, RequireAuth(auth), RequireAdmin())
}
