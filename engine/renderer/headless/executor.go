package headless

import (
	"fmt"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer/components"
	"github.com/spaghettifunk/prism/engine/renderer/queue"
)

// Stats summarizes executed command streams.
type Stats struct {
	Frames int
	Passes int
	Draws  int
	// DrawsByLight counts draws per light type.
	DrawsByLight  map[components.LightType]int
	ShadowedDraws int
}

func (s *Stats) Add(other Stats) {
	s.Frames += other.Frames
	s.Passes += other.Passes
	s.Draws += other.Draws
	s.ShadowedDraws += other.ShadowedDraws
	if s.DrawsByLight == nil {
		s.DrawsByLight = make(map[components.LightType]int)
	}
	for k, v := range other.DrawsByLight {
		s.DrawsByLight[k] += v
	}
}

/**
 * @brief Replays a command stream without executing it, checking that
 * passes do not interleave, that every draw happens inside the pass it
 * belongs to and that the stream ends with exactly one PRESENT.
 *
 * @return The statistics of the stream, or an error wrapping
 * core.ErrInvalidCommandStream describing the first violation.
 */
func Validate(commands []queue.RenderCommand) (Stats, error) {
	stats := Stats{DrawsByLight: make(map[components.LightType]int)}

	invalid := func(i int, format string, args ...interface{}) (Stats, error) {
		return Stats{}, fmt.Errorf("command %d: %s: %w", i, fmt.Sprintf(format, args...), core.ErrInvalidCommandStream)
	}

	if len(commands) == 0 {
		return invalid(0, "empty stream")
	}

	var open *queue.RenderPass
	started := make(map[*queue.RenderPass]bool)
	for i, cmd := range commands {
		switch cmd.Type {
		case queue.RenderCommandTypePassStart:
			if open != nil {
				return invalid(i, "pass started while %s is open", open)
			}
			if cmd.RenderPass == nil {
				return invalid(i, "pass start without a pass")
			}
			if started[cmd.RenderPass] {
				return invalid(i, "%s started twice", cmd.RenderPass)
			}
			started[cmd.RenderPass] = true
			open = cmd.RenderPass
			stats.Passes++
		case queue.RenderCommandTypeDraw:
			if open == nil || cmd.RenderPass != open {
				return invalid(i, "draw outside of its pass")
			}
			if cmd.Material == nil || cmd.Entity == nil || cmd.Light == nil {
				return invalid(i, "incomplete draw %s", cmd)
			}
			stats.Draws++
			stats.DrawsByLight[cmd.Light.LightType()]++
			if cmd.ShadowMap != nil {
				stats.ShadowedDraws++
			}
		case queue.RenderCommandTypePassEnd:
			if open == nil || cmd.RenderPass != open {
				return invalid(i, "pass end does not match the open pass")
			}
			open = nil
		case queue.RenderCommandTypePresent:
			if i != len(commands)-1 {
				return invalid(i, "present before the end of the stream")
			}
			if open != nil {
				return invalid(i, "present while %s is open", open)
			}
			stats.Frames++
		default:
			return invalid(i, "unknown command type %d", cmd.Type)
		}
	}

	if commands[len(commands)-1].Type != queue.RenderCommandTypePresent {
		return invalid(len(commands)-1, "stream does not end with present")
	}
	return stats, nil
}
