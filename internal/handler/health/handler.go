package health

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fonsecabarber/barber-api/internal/config"
	"github.com/fonsecabarber/barber-api/internal/repository"
)

type Handler struct {
	store    repository.Store
	env      string
	supabase config.SupabaseConfig
}

// NewHandler accepts a nil store, which the diagnostics report as a failed connection.
func NewHandler(store repository.Store, env string, supabase config.SupabaseConfig) *Handler {
	return &Handler{
		store:    store,
		env:      env,
		supabase: supabase,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/health", h.Health)
	r.GET("/debug", h.Debug)
	r.GET("/supabase-config", h.SupabaseConfig)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "env": h.env})
}

type Diagnostics struct {
	HasURL         bool   `json:"hasUrl"`
	HasKey         bool   `json:"hasKey"`
	URLPreview     string `json:"urlPreview"`
	Env            string `json:"env"`
	ConnectionTest string `json:"connectionTest"`
	TablesFound    bool   `json:"tablesFound"`
}

// Debug probes the settings table; it never exposes the key itself.
func (h *Handler) Debug(c *gin.Context) {
	d := Diagnostics{
		HasURL:     h.supabase.URL != "",
		HasKey:     h.supabase.AnonKey != "",
		URLPreview: "missing",
		Env:        h.env,
	}
	if d.HasURL {
		preview := h.supabase.URL
		if len(preview) > 15 {
			preview = preview[:15]
		}
		d.URLPreview = preview + "..."
	}

	if h.store == nil {
		d.ConnectionTest = "Error: database client could not be initialized"
		c.JSON(http.StatusOK, d)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if _, err := h.store.Settings().List(ctx); err != nil {
		d.ConnectionTest = fmt.Sprintf("Failed: %v", err)
	} else {
		d.ConnectionTest = "Success"
		d.TablesFound = true
	}
	c.JSON(http.StatusOK, d)
}

// SupabaseConfig hands the browser the public project URL and anon key.
func (h *Handler) SupabaseConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"url":     h.supabase.URL,
		"anonKey": h.supabase.AnonKey,
	})
}
