package api

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/constants"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/keys"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/logging"
)

type catalogPage struct {
	names []string
	total int
}

// ListPokemons returns one page of catalog names with navigation links.
// per_page is capped at the configured maximum.
func (h *Handler) ListPokemons(c *gin.Context) {
	page, ok1 := positiveQuery(c, constants.QueryPage, 1)
	perPage, ok2 := positiveQuery(c, constants.QueryPerPage, constants.DefaultPerPage)
	if !ok1 || !ok2 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidPagination})
		return
	}
	if perPage > h.maxPerPage {
		perPage = h.maxPerPage
	}

	key := keys.PageKey(page, perPage)
	v, hit, err := h.pages.Get(c.Request.Context(), key, func() (interface{}, error) {
		names, total := h.pokemons.Page(page, perPage)
		return catalogPage{names: names, total: total}, nil
	})
	if err != nil {
		logging.Error("failed to build catalog page", err, logging.Fields{constants.LogFieldKey: key})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInternal})
		return
	}
	p := v.(catalogPage)
	if hit {
		c.Header(constants.HeaderXCache, "HIT")
	} else {
		c.Header(constants.HeaderXCache, "MISS")
	}

	pages := (p.total + perPage - 1) / perPage
	link := func(n int) string { return pageURL(c, n, perPage) }
	links := gin.H{
		constants.JSONFieldLinkFirst: link(1),
		constants.JSONFieldLinkLast:  link(max(pages, 1)),
		constants.JSONFieldLinkPrev:  nil,
		constants.JSONFieldLinkNext:  nil,
	}
	if page > 1 {
		links[constants.JSONFieldLinkPrev] = link(page - 1)
	}
	if page < pages {
		links[constants.JSONFieldLinkNext] = link(page + 1)
	}

	c.JSON(http.StatusOK, gin.H{
		constants.JSONFieldPage:    page,
		constants.JSONFieldPerPage: perPage,
		constants.JSONFieldTotal:   p.total,
		constants.JSONFieldPages:   pages,
		constants.JSONFieldData:    p.names,
		constants.JSONFieldLinks:   links,
	})
}

// positiveQuery parses an optional positive integer query parameter.
func positiveQuery(c *gin.Context, name string, def int) (int, bool) {
	s, ok := c.GetQuery(name)
	if !ok || s == "" {
		return def, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// pageURL builds an absolute listing URL from the incoming request's host.
func pageURL(c *gin.Context, page, perPage int) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	} else if p := c.GetHeader("X-Forwarded-Proto"); p == "http" || p == "https" {
		scheme = p
	}
	u := url.URL{
		Scheme: scheme,
		Host:   c.Request.Host,
		Path:   constants.RouteAPIPrefix + constants.RoutePokemons,
		RawQuery: url.Values{
			constants.QueryPage:    {strconv.Itoa(page)},
			constants.QueryPerPage: {strconv.Itoa(perPage)},
		}.Encode(),
	}
	return u.String()
}
