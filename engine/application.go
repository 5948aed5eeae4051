package engine

import (
	"github.com/spaghettifunk/anima-gfx/engine/core"
	"github.com/spaghettifunk/anima-gfx/engine/renderer/metadata"
)

type ApplicationConfig struct {
	// Path of the TOML configuration file. Empty means defaults only.
	ConfigPath string
	// The application name used in windowing, overrides the config title if set.
	Name string
	// Window starting size, overrides the config if non zero.
	StartWidth  uint32
	StartHeight uint32
}

// resolve loads the configuration and applies the application overrides.
func (ac *ApplicationConfig) resolve() (*core.Config, error) {
	cfg, err := core.LoadConfig(ac.ConfigPath)
	if err != nil {
		return nil, err
	}
	if ac.Name != "" {
		cfg.Window.Title = ac.Name
	}
	if ac.StartWidth != 0 {
		cfg.Window.Width = ac.StartWidth
	}
	if ac.StartHeight != 0 {
		cfg.Window.Height = ac.StartHeight
	}
	return cfg, nil
}

func contextParams(cfg *core.Config) metadata.ContextParams {
	minFilter, ok := metadata.TextureFilterFromString(cfg.Graphics.DefaultTextureMinFilter)
	if !ok {
		core.LogWarn("unknown texture filter %q, using linear", cfg.Graphics.DefaultTextureMinFilter)
		minFilter = metadata.TextureFilterLinear
	}
	magFilter, ok := metadata.TextureFilterFromString(cfg.Graphics.DefaultTextureMagFilter)
	if !ok {
		core.LogWarn("unknown texture filter %q, using linear", cfg.Graphics.DefaultTextureMagFilter)
		magFilter = metadata.TextureFilterLinear
	}
	return metadata.ContextParams{
		DefaultTextureMinFilter: minFilter,
		DefaultTextureMagFilter: magFilter,
		EnableValidation:        cfg.Graphics.Validation,
		ValidationLayers:        cfg.Graphics.ValidationLayers,
		DeviceExtensions:        cfg.Graphics.DeviceExtensions,
	}
}
