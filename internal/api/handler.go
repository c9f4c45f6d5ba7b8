package api

import (
	"github.com/gin-gonic/gin"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/cache"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/constants"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/game"
)

// BattleService is the subset of service.BattleService used by the
// handlers.
type BattleService interface {
	StartBattle(nameA, nameB string) (string, error)
	BattleStatus(id string) (game.Battle, error)
}

// CatalogPager exposes the read side of the catalog.
type CatalogPager interface {
	Page(page, perPage int) ([]string, int)
	Count() int
}

// Handler groups all HTTP handlers.
type Handler struct {
	battles    BattleService
	pokemons   CatalogPager
	pages      *cache.TTLCache
	maxPerPage int
}

// NewHandler creates a Handler. A nil pages cache disables listing caching;
// a non-positive maxPerPage uses constants.DefaultMaxPerPage.
func NewHandler(battles BattleService, pokemons CatalogPager, pages *cache.TTLCache, maxPerPage int) *Handler {
	if pages == nil {
		pages = cache.New(0)
	}
	if maxPerPage <= 0 {
		maxPerPage = constants.DefaultMaxPerPage
	}
	return &Handler{battles: battles, pokemons: pokemons, pages: pages, maxPerPage: maxPerPage}
}

// RegisterRoutes mounts the API on r.
func RegisterRoutes(r gin.IRouter, h *Handler) {
	v1 := r.Group(constants.RouteAPIPrefix)
	{
		v1.POST(constants.RouteBattle, h.CreateBattle)
		v1.GET(constants.RouteBattleStatus, h.GetBattleStatus)
		v1.GET(constants.RoutePokemons, h.ListPokemons)
	}
	r.GET(constants.RouteHealth, h.Health)
	r.GET(constants.RouteVersion, Version)
}
