// Package provider exposes the PixelTube plugin to media hosts and the CLI.
package provider

import (
	"github.com/pixeltube-cli/pixeltube/constant"
	"github.com/pixeltube-cli/pixeltube/source"
	"github.com/samber/lo"
)

// Provider represents a source provider.
type Provider struct {
	ID           string
	Name         string
	CreateSource func(settings Settings) (source.Source, error)
}

func (p *Provider) String() string {
	return p.Name
}

// Builtins returns built-in providers.
func Builtins() []*Provider {
	return []*Provider{
		{
			ID:   constant.Pixeltube,
			Name: "PixelTube",
			CreateSource: func(settings Settings) (source.Source, error) {
				plugin := New(nil)
				if err := plugin.Enable(ConfigFromViper(), settings); err != nil {
					return nil, err
				}
				return plugin, nil
			},
		},
	}
}

// Get finds a provider by id or name.
func Get(name string) (*Provider, bool) {
	return lo.Find(Builtins(), func(p *Provider) bool {
		return p.ID == name || p.Name == name
	})
}

// Default returns the PixelTube provider enabled from the loaded config.
func Default(settings Settings) (source.Source, error) {
	p, _ := Get(constant.Pixeltube)
	return p.CreateSource(settings)
}
