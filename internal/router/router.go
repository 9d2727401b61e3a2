// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/JMDCLkr04/Cinema/internal/config"
	"github.com/JMDCLkr04/Cinema/internal/handler"
	"github.com/JMDCLkr04/Cinema/internal/middleware"
)

// RegisterRoutes registers routes that carry no authentication:
// the health check and the public read-side listings. The GET listings
// sit behind the Redis response cache; pass a nil client to run
// without caching.
func RegisterRoutes(e *echo.Echo, sa *handler.SeatAssignmentHandler, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	e.GET("/funciones/:id_funcion/asientos-ocupados", sa.ListOccupiedSeats, cache)
	e.GET("/reservas/:id_reserva/asientos", sa.ListReservationSeats, cache)
}

// RegisterSeatAssignment registers the mutating ledger endpoints behind
// JWT authentication. Any logged-in rol may attach or detach seats. A
// successful mutation drops the reservation's cached seat listing so
// the public GET reflects it immediately.
func RegisterSeatAssignment(e *echo.Echo, sa *handler.SeatAssignmentHandler, jwtSecret string, rdb *redis.Client) {
	g := e.Group("/reservas")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRol("cliente", "admin"))
	g.Use(middleware.NewCacheInvalidation(config.LoadCacheConfig(), rdb, func(c echo.Context) string {
		return "/reservas/" + c.Param("id_reserva") + "/asientos"
	}))
	g.POST("/:id_reserva/asientos/:id_asiento", sa.AttachSeat)
	g.DELETE("/:id_reserva/asientos/:id_asiento", sa.DetachSeat)
}

// RegisterAuth registers the authentication endpoints. Register, login,
// refresh and logout are open; /me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	me := e.Group("/me")
	me.Use(middleware.JWTAuth(jwtSecret))
	me.GET("", a.Me)
}
