package graph

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

type ArithmeticOperator int

const (
	ArithmeticOperatorAdd ArithmeticOperator = iota
	ArithmeticOperatorSubtract
	ArithmeticOperatorMultiply
	ArithmeticOperatorDivide
	ArithmeticOperatorDot
)

func (o ArithmeticOperator) String() string {
	switch o {
	case ArithmeticOperatorAdd:
		return "ADD"
	case ArithmeticOperatorSubtract:
		return "SUBTRACT"
	case ArithmeticOperatorMultiply:
		return "MULTIPLY"
	case ArithmeticOperatorDivide:
		return "DIVIDE"
	case ArithmeticOperatorDot:
		return "DOT"
	}
	return "UNKNOWN"
}

type ConditionalOperator int

const (
	ConditionalOperatorGreater ConditionalOperator = iota
	ConditionalOperatorLess
	ConditionalOperatorEqual
)

func (o ConditionalOperator) String() string {
	switch o {
	case ConditionalOperatorGreater:
		return "GREATER"
	case ConditionalOperatorLess:
		return "LESS"
	case ConditionalOperatorEqual:
		return "EQUAL"
	}
	return "UNKNOWN"
}

// TextureNode samples a texture at the current fragment.
type TextureNode struct {
	Texture *metadata.Texture
}

func (n *TextureNode) Signature() string {
	if n.Texture == nil {
		return "texture(nil)"
	}
	return fmt.Sprintf("texture(%d:%s)", n.Texture.ID, n.Texture.Name)
}

// ValueNode is a constant.
type ValueNode[T float32 | mgl32.Vec4] struct {
	Value T
}

func (n *ValueNode[T]) Signature() string {
	return fmt.Sprintf("value(%v)", n.Value)
}

type ArithmeticNode struct {
	A, B     Node
	Operator ArithmeticOperator
}

func (n *ArithmeticNode) Signature() string {
	return signature("arithmetic."+n.Operator.String(), n.A, n.B)
}

/**
 * @brief Selects Then when (A op B) holds, otherwise Otherwise.
 */
type ConditionalNode struct {
	A, B            Node
	Then, Otherwise Node
	Operator        ConditionalOperator
}

func (n *ConditionalNode) Signature() string {
	return signature("conditional."+n.Operator.String(), n.A, n.B, n.Then, n.Otherwise)
}

// BlurNode applies a fixed gaussian kernel to its input.
type BlurNode struct {
	Input Node
}

func (n *BlurNode) Signature() string {
	return signature("blur", n.Input)
}

// ComponentNode swizzles its input, e.g. "x" or "rgb".
type ComponentNode struct {
	Input     Node
	Component string
}

func (n *ComponentNode) Signature() string {
	return signature("component."+n.Component, n.Input)
}

/**
 * @brief The default output node: shades geometry with the
 * current light, optionally overriding the output colour.
 */
type RenderNode struct {
	colourInput Node
}

func NewRenderNode() *RenderNode {
	return &RenderNode{}
}

func (n *RenderNode) ColourInput() Node {
	return n.colourInput
}

func (n *RenderNode) SetColourInput(input Node) {
	n.colourInput = input
}

func (n *RenderNode) Signature() string {
	return signature("render", n.colourInput)
}
