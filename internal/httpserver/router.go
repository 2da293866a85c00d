package httpserver

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	orderrepo "storefront/internal/repository/order"
	userrepo "storefront/internal/repository/user"
)

// Deps carries the repositories the support routes read from. The API is
// read-only: erasure itself is triggered elsewhere, this surface only lets
// support staff observe the persisted state.
type Deps struct {
	UserRepo  userrepo.Repository
	OrderRepo orderrepo.Repository
}

// buildRouter wires routes for the support/reporting API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery(), cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	users := router.Group("/users")
	users.GET("/:id", getUserHandler(deps.UserRepo))
	users.GET("/:id/addresses", listAddressesHandler(deps.UserRepo))
	users.GET("/:id/orders", listOrdersHandler(deps.UserRepo, deps.OrderRepo))

	return router
}
