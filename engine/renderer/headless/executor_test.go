package headless

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
	"github.com/spaghettifunk/prism/engine/renderer/queue"
	"github.com/spaghettifunk/prism/engine/scene"
)

func TestValidate(t *testing.T) {
	s := scene.New("test")
	e := s.CreateEntity(s.CreateRenderGraph(), &metadata.Mesh{}, nil)
	a := &queue.RenderPass{Name: "a", Scene: s}
	b := &queue.RenderPass{Name: "b", Scene: s}

	start := func(p *queue.RenderPass) queue.RenderCommand {
		return queue.RenderCommand{Type: queue.RenderCommandTypePassStart, RenderPass: p}
	}
	end := func(p *queue.RenderPass) queue.RenderCommand {
		return queue.RenderCommand{Type: queue.RenderCommandTypePassEnd, RenderPass: p}
	}
	draw := func(p *queue.RenderPass) queue.RenderCommand {
		return queue.RenderCommand{
			Type:       queue.RenderCommandTypeDraw,
			RenderPass: p,
			Material:   &metadata.Material{},
			Entity:     e,
			Light:      s.LightingRig().AmbientLight,
		}
	}
	present := queue.RenderCommand{Type: queue.RenderCommandTypePresent}

	tests := map[string]struct {
		commands []queue.RenderCommand
		valid    bool
	}{
		"well formed":          {[]queue.RenderCommand{start(a), draw(a), end(a), start(b), end(b), present}, true},
		"present only":         {[]queue.RenderCommand{present}, true},
		"empty":                {nil, false},
		"interleaved":          {[]queue.RenderCommand{start(a), start(b), end(b), end(a), present}, false},
		"draw outside":         {[]queue.RenderCommand{draw(a), start(a), end(a), present}, false},
		"draw in wrong pass":   {[]queue.RenderCommand{start(a), draw(b), end(a), present}, false},
		"missing present":      {[]queue.RenderCommand{start(a), end(a)}, false},
		"two presents":         {[]queue.RenderCommand{present, start(a), end(a), present}, false},
		"unterminated":         {[]queue.RenderCommand{start(a), present}, false},
		"pass started twice":   {[]queue.RenderCommand{start(a), end(a), start(a), end(a), present}, false},
		"incomplete draw":      {[]queue.RenderCommand{start(a), {Type: queue.RenderCommandTypeDraw, RenderPass: a}, end(a), present}, false},
		"unknown command type": {[]queue.RenderCommand{{Type: 42}, present}, false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Validate(tt.commands)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, core.ErrInvalidCommandStream)
			}
		})
	}
}

func TestValidateStats(t *testing.T) {
	s := scene.New("test")
	e := s.CreateEntity(s.CreateRenderGraph(), &metadata.Mesh{}, nil)
	p := &queue.RenderPass{Scene: s}

	stats, err := Validate([]queue.RenderCommand{
		{Type: queue.RenderCommandTypePassStart, RenderPass: p},
		{Type: queue.RenderCommandTypeDraw, RenderPass: p, Material: &metadata.Material{}, Entity: e, Light: s.LightingRig().AmbientLight},
		{Type: queue.RenderCommandTypeDraw, RenderPass: p, Material: &metadata.Material{}, Entity: e, Light: s.LightingRig().AmbientLight, ShadowMap: &metadata.RenderTarget{}},
		{Type: queue.RenderCommandTypePassEnd, RenderPass: p},
		{Type: queue.RenderCommandTypePresent},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Frames)
	assert.Equal(t, 1, stats.Passes)
	assert.Equal(t, 2, stats.Draws)
	assert.Equal(t, 1, stats.ShadowedDraws)
}
