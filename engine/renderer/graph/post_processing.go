package graph

import (
	"fmt"

	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

type ColourAdjustNode struct {
	RenderNode
	Description metadata.ColourAdjustDescription
}

func NewColourAdjustNode(input Node, description metadata.ColourAdjustDescription) *ColourAdjustNode {
	n := &ColourAdjustNode{Description: description}
	n.SetColourInput(input)
	return n
}

func (n *ColourAdjustNode) Signature() string {
	d := n.Description
	name := fmt.Sprintf("colour_adjust[gamma=%g,exposure=%g,tone=%s]", d.Gamma, d.Exposure, d.ToneMapping)
	return signature(name, n.ColourInput())
}

type AntiAliasingNode struct {
	RenderNode
}

func NewAntiAliasingNode(input Node) *AntiAliasingNode {
	n := &AntiAliasingNode{}
	n.SetColourInput(input)
	return n
}

func (n *AntiAliasingNode) Signature() string {
	return signature("anti_aliasing", n.ColourInput())
}

/**
 * @brief Screen space ambient occlusion. Consumes the scene colour
 * together with the normal and position buffers written by the AO
 * data pass.
 */
type AmbientOcclusionNode struct {
	RenderNode
	Normal      Node
	Position    Node
	Description metadata.AmbientOcclusionDescription
}

func NewAmbientOcclusionNode(colour, normal, position Node, description metadata.AmbientOcclusionDescription) *AmbientOcclusionNode {
	n := &AmbientOcclusionNode{
		Normal:      normal,
		Position:    position,
		Description: description,
	}
	n.SetColourInput(colour)
	return n
}

func (n *AmbientOcclusionNode) Signature() string {
	d := n.Description
	name := fmt.Sprintf("ambient_occlusion[samples=%d,radius=%g,bias=%g]", d.SampleCount, d.Radius, d.Bias)
	return signature(name, n.ColourInput(), n.Normal, n.Position)
}

// SkyBoxNode samples a cube map along the view direction.
type SkyBoxNode struct {
	RenderNode
	SkyBox *metadata.CubeMap
}

func NewSkyBoxNode(skyBox *metadata.CubeMap) *SkyBoxNode {
	return &SkyBoxNode{SkyBox: skyBox}
}

func (n *SkyBoxNode) Signature() string {
	name := "nil"
	if n.SkyBox != nil {
		name = n.SkyBox.Name
	}
	return fmt.Sprintf("sky_box[%s]", name)
}
