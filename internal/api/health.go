package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health reports liveness and the number of loaded pokemon.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"pokemons": h.pokemons.Count(),
	})
}
