// Package api exposes battle verdicts and animations over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"pokebattle/animation"
	"pokebattle/battle"
	"pokebattle/data"
	"pokebattle/game"
)

var tracer = otel.Tracer("pokebattle/api")

// Renderer produces an animation file for a decided battle.
type Renderer interface {
	Render(ctx context.Context, a, b game.PokemonRecord, v game.BattleVerdict, shiny bool) (string, error)
}

type Handler struct {
	Source   data.Source
	Renderer Renderer
	TempDir  string
	LiveTick time.Duration
	NewRand  func() *rand.Rand
}

func NewHandler(src data.Source, r Renderer, tempDir string, liveTick time.Duration) *Handler {
	return &Handler{
		Source:   src,
		Renderer: r,
		TempDir:  tempDir,
		LiveTick: liveTick,
		NewRand:  animation.NewRand,
	}
}

// VisualizationResponse describes a rendered battle.
type VisualizationResponse struct {
	VisualizationPath string `json:"visualization_path"`
	Description       string `json:"description"`
	Pokemon1          string `json:"pokemon1"`
	Pokemon2          string `json:"pokemon2"`
	Winner            string `json:"winner"`
	BattleHighlights  string `json:"battle_highlights"`
	ShinyUsed         bool   `json:"shiny_used"`
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.status)
	rg.GET("/battle", traced("api.battle"), h.battle)
	rg.GET("/battle/visualize", traced("api.visualize"), h.visualize)
	rg.GET("/battle/visualize/mock", traced("api.visualize_mock"), h.visualizeMock)
	rg.GET("/battle/visualize/view/:filename", h.view)
	rg.GET("/battle/live", h.live)
}

// NewRouter returns a gin engine with the default logger and recovery
// middleware and every route registered.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.Default()
	_ = router.SetTrustedProxies(nil)
	h.RegisterRoutes(router.Group(""))
	return router
}

// traced runs the rest of the chain inside a server span.
func traced(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), name)
		defer span.End()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
		span.SetAttributes(attribute.Int("http.status_code", c.Writer.Status()))
		if c.Writer.Status() >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(c.Writer.Status()))
		}
	}
}

func (h *Handler) rng() *rand.Rand {
	if h.NewRand == nil {
		return animation.NewRand()
	}
	return h.NewRand()
}

func (h *Handler) status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Pokémon battle service is running"})
}

func pair(c *gin.Context) (string, string, bool) {
	p1 := strings.TrimSpace(c.Query("pokemon1"))
	p2 := strings.TrimSpace(c.Query("pokemon2"))
	if p1 == "" || p2 == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pokemon1 and pokemon2 are required"})
		return "", "", false
	}
	return p1, p2, true
}

func shinyParam(c *gin.Context) bool {
	shiny, err := strconv.ParseBool(c.DefaultQuery("use_shiny", "false"))
	return err == nil && shiny
}

func (h *Handler) lookupError(c *gin.Context, name string, err error) {
	if errors.Is(err, data.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("pokemon %q not found", name)})
		return
	}
	log.Printf("[api] lookup %s: %v", name, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "pokemon lookup failed"})
}

func (h *Handler) battle(c *gin.Context) {
	p1, p2, ok := pair(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	a, err := h.Source.Pokemon(ctx, p1)
	if err != nil {
		h.lookupError(c, p1, err)
		return
	}
	b, err := h.Source.Pokemon(ctx, p2)
	if err != nil {
		h.lookupError(c, p2, err)
		return
	}
	v := battle.Evaluate(a, b)
	c.JSON(http.StatusOK, gin.H{
		"winner":    game.Capitalize(v.Winner),
		"reasoning": v.Reasoning,
	})
}

// complete turns two names into full records, falling back to default stats.
func (h *Handler) complete(ctx context.Context, p1, p2 string) (game.PokemonRecord, game.PokemonRecord, error) {
	a, err := data.EnsureComplete(ctx, h.Source, game.PokemonRecord{Name: p1})
	if err != nil {
		return a, game.PokemonRecord{}, err
	}
	b, err := data.EnsureComplete(ctx, h.Source, game.PokemonRecord{Name: p2})
	return a, b, err
}

func highlights(a, b game.PokemonRecord, winner string) string {
	capTypes := func(types []string) string {
		out := make([]string, len(types))
		for i, t := range types {
			out[i] = game.Capitalize(t)
		}
		return strings.Join(out, ", ")
	}
	nameA, nameB := game.Capitalize(a.Name), game.Capitalize(b.Name)
	s := fmt.Sprintf("The battle between %s and %s was intense! ", nameA, nameB)
	if len(a.Types) > 0 && len(b.Types) > 0 {
		s += fmt.Sprintf("%s used its %s moves while %s countered with %s attacks. ",
			nameA, capTypes(a.Types), nameB, capTypes(b.Types))
	}
	return s + fmt.Sprintf("In the end, %s emerged victorious!", game.Capitalize(winner))
}

func (h *Handler) render(c *gin.Context, verdict func(a, b game.PokemonRecord) game.BattleVerdict, describe string, p1, p2 string) {
	shiny := shinyParam(c)
	ctx := c.Request.Context()

	a, b, err := h.complete(ctx, p1, p2)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	v := verdict(a, b)
	path, err := h.Renderer.Render(ctx, a, b, v, shiny)
	if err != nil {
		log.Printf("[api] render %s vs %s: %v", p1, p2, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error generating battle visualization"})
		return
	}

	nameA, nameB := game.Capitalize(p1), game.Capitalize(p2)
	c.JSON(http.StatusOK, VisualizationResponse{
		VisualizationPath: path,
		Description:       fmt.Sprintf("%s between %s and %s", describe, nameA, nameB),
		Pokemon1:          nameA,
		Pokemon2:          nameB,
		Winner:            game.Capitalize(v.Winner),
		BattleHighlights:  highlights(a, b, v.Winner),
		ShinyUsed:         shiny,
	})
}

func (h *Handler) visualize(c *gin.Context) {
	p1, p2, ok := pair(c)
	if !ok {
		return
	}
	h.render(c, battle.Evaluate, "Battle", p1, p2)
}

func (h *Handler) visualizeMock(c *gin.Context) {
	p1 := c.DefaultQuery("pokemon1", "pikachu")
	p2 := c.DefaultQuery("pokemon2", "charizard")
	h.render(c, battle.MockVerdict, "Mock battle visualization", p1, p2)
}

func (h *Handler) view(c *gin.Context) {
	name := filepath.Base(c.Param("filename"))
	path := filepath.Join(h.TempDir, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		c.JSON(http.StatusNotFound, gin.H{"error": "visualization file not found"})
		return
	}
	c.File(path)
}
