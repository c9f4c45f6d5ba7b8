package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/catalog"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/constants"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/game"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/logging"
)

// CreateBattle starts a battle between the two pokemon named in the body and
// returns its id without waiting for the result.
func (h *Handler) CreateBattle(c *gin.Context) {
	var body map[string]interface{}
	if err := json.NewDecoder(c.Request.Body).Decode(&body); err != nil || body == nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidJSON})
		return
	}
	raw1, ok1 := body[constants.JSONFieldPokemon1]
	raw2, ok2 := body[constants.JSONFieldPokemon2]
	if !ok1 || !ok2 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrBothPokemonRequired})
		return
	}
	name1, ok1 := raw1.(string)
	name2, ok2 := raw2.(string)
	if !ok1 || !ok2 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrPokemonMustBeStrings})
		return
	}

	id, err := h.battles.StartBattle(name1, name2)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrCatalogEmpty):
			c.JSON(http.StatusServiceUnavailable, gin.H{constants.JSONKeyError: constants.ErrNoDataAvailable})
		case errors.Is(err, game.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrPokemonUnrecognized})
		case errors.Is(err, game.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrSelfBattle})
		default:
			logging.Error("failed to start battle", err, logging.Fields{
				constants.LogFieldPokemon1: name1,
				constants.LogFieldPokemon2: name2,
			})
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInternal})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{constants.JSONFieldBattleID: id})
}

// GetBattleStatus reports the state of a battle. The result is null until
// the battle resolves, and stays null for failed battles.
func (h *Handler) GetBattleStatus(c *gin.Context) {
	raw := c.Query(constants.QueryBattleID)
	id, ok := normalizeBattleID(raw)
	if !ok {
		msg := constants.ErrBattleIDFormat
		if raw == "" {
			msg = constants.ErrBattleIDRequired
		}
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: msg})
		return
	}

	b, err := h.battles.BattleStatus(id)
	if err != nil {
		if errors.Is(err, game.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: fmt.Sprintf(constants.ErrBattleNotFoundFmt, id)})
			return
		}
		logging.Error("failed to read battle", err, logging.Fields{constants.LogFieldBattleID: id})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInternal})
		return
	}

	var result interface{}
	if b.Status == game.StatusResolved {
		result = gin.H{
			constants.JSONFieldWinner: b.Winner,
			constants.JSONFieldDamage: b.Damage,
		}
	}
	c.Header(constants.HeaderCacheControl, constants.CacheControlNoCache)
	c.JSON(http.StatusOK, gin.H{
		constants.JSONFieldStatus: b.Status,
		constants.JSONFieldResult: result,
	})
}
