package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"scaleout-planner/internal/api/models"
	"scaleout-planner/internal/config"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"
)

// PresetHandler handles position preset requests
type PresetHandler struct {
	presetDir string
}

// GetPresetDir returns the preset directory path (for debugging)
func (h *PresetHandler) GetPresetDir() string {
	return h.presetDir
}

// NewPresetHandler creates a new preset handler
func NewPresetHandler() *PresetHandler {
	dir := os.Getenv("PRESET_DIR")
	if dir == "" {
		// Try to resolve relative to working directory first
		wd, err := os.Getwd()
		if err == nil {
			dir = filepath.Join(wd, "examples", "positions")
		} else {
			dir = "./examples/positions"
		}
	}

	// Convert to absolute path for reliability
	absDir, err := filepath.Abs(dir)
	if err == nil {
		dir = absDir
	}

	log.Printf("PresetHandler: Using preset directory: %s", dir)

	return &PresetHandler{
		presetDir: dir,
	}
}

// ListPresets handles GET /api/v1/presets
func (h *PresetHandler) ListPresets(c *gin.Context) {
	presets := []models.PresetInfo{}

	entries, err := os.ReadDir(h.presetDir)
	if err != nil {
		log.Printf("PresetHandler: Failed to read preset directory %s: %v", h.presetDir, err)
		c.JSON(http.StatusOK, gin.H{"presets": presets})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(h.presetDir, entry.Name())
		info, err := h.loadPresetInfo(path, entry.Name())
		if err != nil {
			log.Printf("PresetHandler: Failed to load preset file %s: %v", path, err)
			continue // Skip invalid files
		}

		presets = append(presets, *info)
	}

	log.Printf("PresetHandler: Returning %d presets", len(presets))

	c.JSON(http.StatusOK, gin.H{"presets": presets})
}

func (h *PresetHandler) loadPresetInfo(path, filename string) (*models.PresetInfo, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		Position config.PositionConfig `yaml:"position"`
	}
	if err := yaml.Unmarshal(raw, &wrapper); err != nil {
		return nil, err
	}

	// Keep the filename without extension as the ID for consistency
	// (e.g., "btc_main.yaml" -> "btc_main")
	id := strings.TrimSuffix(filename, ".yaml")

	name := wrapper.Position.Name
	if name == "" {
		name = id
	}

	return &models.PresetInfo{
		ID:   id,
		Name: name,
		File: path,
		Specs: models.PresetSpecs{
			Symbol:   wrapper.Position.Symbol,
			Quantity: wrapper.Position.Quantity,
		},
	}, nil
}
