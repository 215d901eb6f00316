package metadata

import "fmt"

/**
 * @brief Represents a render target, a colour and depth plane that passes
 * render into and later passes sample from. A nil *RenderTarget stands
 * for the backend's default (screen) target.
 */
type RenderTarget struct {
	/** @brief Backend assigned identifier. */
	ID uint32
	/** @brief Human readable name, unique per backend. */
	Name   string
	Width  uint32
	Height uint32
	/** @brief The colour plane. */
	Colour *Texture
	/** @brief The depth plane. */
	Depth *Texture
	/** @brief Set for targets assembled from two other targets' planes. */
	Hybrid bool
	/** @brief Backend specific data (framebuffer handles etc). */
	InternalData interface{}
}

func (rt *RenderTarget) ColourTexture() *Texture {
	if rt == nil {
		return nil
	}
	return rt.Colour
}

func (rt *RenderTarget) DepthTexture() *Texture {
	if rt == nil {
		return nil
	}
	return rt.Depth
}

func (rt *RenderTarget) String() string {
	if rt == nil {
		return "<screen>"
	}
	if rt.Name != "" {
		return rt.Name
	}
	return fmt.Sprintf("target#%d", rt.ID)
}
