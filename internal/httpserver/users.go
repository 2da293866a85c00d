package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"storefront/internal/domain"
	orderrepo "storefront/internal/repository/order"
	userrepo "storefront/internal/repository/user"
)

func getUserHandler(repo userrepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := userIDParam(c)
		if !ok {
			return
		}
		u, err := repo.GetByID(c.Request.Context(), id)
		if err != nil {
			respondRepoError(c, err)
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

func listAddressesHandler(repo userrepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := userIDParam(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		if _, err := repo.GetByID(ctx, id); err != nil {
			respondRepoError(c, err)
			return
		}
		addresses, err := repo.ListAddresses(ctx, id)
		if err != nil {
			respondRepoError(c, err)
			return
		}
		if addresses == nil {
			addresses = []domain.ShippingAddress{}
		}
		c.JSON(http.StatusOK, gin.H{"addresses": addresses})
	}
}

func listOrdersHandler(users userrepo.Repository, orders orderrepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := userIDParam(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		if _, err := users.GetByID(ctx, id); err != nil {
			respondRepoError(c, err)
			return
		}
		list, err := orders.ListByUser(ctx, id)
		if err != nil {
			respondRepoError(c, err)
			return
		}
		if list == nil {
			list = []domain.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"orders": list})
	}
}

func userIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return 0, false
	}
	return id, true
}

func respondRepoError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
