package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	EnvBackend    = "ANIMA_GFX_BACKEND"
	EnvValidation = "ANIMA_GFX_VALIDATION"
	EnvLogLevel   = "ANIMA_LOG_LEVEL"
)

type WindowConfig struct {
	Title           string `toml:"title"`
	Width           uint32 `toml:"width"`
	Height          uint32 `toml:"height"`
	PrintDeviceInfo bool   `toml:"print_device_info"`
}

type GraphicsConfig struct {
	Backend                 string   `toml:"backend"`
	Validation              bool     `toml:"validation"`
	ValidationLayers        []string `toml:"validation_layers"`
	DeviceExtensions        []string `toml:"device_extensions"`
	DefaultTextureMinFilter string   `toml:"default_texture_min_filter"`
	DefaultTextureMagFilter string   `toml:"default_texture_mag_filter"`
	ShaderDir               string   `toml:"shader_dir"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Config is the on-disk configuration of the graphics runtime.
type Config struct {
	Window   WindowConfig   `toml:"window"`
	Graphics GraphicsConfig `toml:"graphics"`
	Log      LogConfig      `toml:"log"`
}

func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Anima GFX",
			Width:  1280,
			Height: 720,
		},
		Graphics: GraphicsConfig{
			Backend:                 "vulkan",
			ValidationLayers:        []string{"VK_LAYER_KHRONOS_validation"},
			DeviceExtensions:        []string{"VK_KHR_swapchain"},
			DefaultTextureMinFilter: "linear",
			DefaultTextureMagFilter: "linear",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig reads the TOML file at path on top of the defaults. A missing file
// is not an error. Environment variables, optionally seeded from a .env file in
// the working directory, take precedence over the file.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			LogDebug("config file %s not found, using defaults", path)
		case err != nil:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(EnvBackend); ok && v != "" {
		c.Graphics.Backend = strings.ToLower(v)
	}
	if v, ok := os.LookupEnv(EnvValidation); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvValidation, v, err)
		}
		c.Graphics.Validation = b
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	return nil
}
