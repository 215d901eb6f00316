package graph

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

/**
 * @brief A node in a render graph. Nodes form an expression tree
 * evaluated per pixel; Signature renders the subtree rooted at the node
 * as a stable string so two graphs describing the same computation over
 * the same textures compare equal.
 */
type Node interface {
	Signature() string
}

/**
 * @brief OutputNode is the root of a graph, the node whose inputs
 * decide what a material writes.
 */
type OutputNode interface {
	Node
	ColourInput() Node
	SetColourInput(input Node)
}

/**
 * @brief A small expression graph describing how a pass computes its
 * output colour from inputs. Graphs own their nodes; a fresh graph
 * starts with a default RenderNode as its output.
 */
type RenderGraph struct {
	nodes      []Node
	renderNode OutputNode
}

func New() *RenderGraph {
	rg := &RenderGraph{}
	rg.renderNode = rg.Create(NewRenderNode()).(OutputNode)
	return rg
}

// Create registers n with the graph and returns it.
func (rg *RenderGraph) Create(n Node) Node {
	rg.nodes = append(rg.nodes, n)
	return n
}

// SetRenderNode replaces the output node of the graph.
func (rg *RenderGraph) SetRenderNode(n OutputNode) OutputNode {
	rg.Create(n)
	rg.renderNode = n
	return n
}

func (rg *RenderGraph) RenderNode() OutputNode {
	return rg.renderNode
}

// Nodes returns every node created in the graph in creation order.
func (rg *RenderGraph) Nodes() []Node {
	return rg.nodes
}

func (rg *RenderGraph) Signature() string {
	return rg.renderNode.Signature()
}

func (rg *RenderGraph) Texture(texture *metadata.Texture) *TextureNode {
	return rg.Create(&TextureNode{Texture: texture}).(*TextureNode)
}

func (rg *RenderGraph) Colour(value mgl32.Vec4) *ValueNode[mgl32.Vec4] {
	return rg.Create(&ValueNode[mgl32.Vec4]{Value: value}).(*ValueNode[mgl32.Vec4])
}

func (rg *RenderGraph) Float(value float32) *ValueNode[float32] {
	return rg.Create(&ValueNode[float32]{Value: value}).(*ValueNode[float32])
}

func (rg *RenderGraph) Arithmetic(a, b Node, op ArithmeticOperator) *ArithmeticNode {
	return rg.Create(&ArithmeticNode{A: a, B: b, Operator: op}).(*ArithmeticNode)
}

func (rg *RenderGraph) Conditional(a, b, then, otherwise Node, op ConditionalOperator) *ConditionalNode {
	return rg.Create(&ConditionalNode{
		A:         a,
		B:         b,
		Then:      then,
		Otherwise: otherwise,
		Operator:  op,
	}).(*ConditionalNode)
}

func (rg *RenderGraph) Blur(input Node) *BlurNode {
	return rg.Create(&BlurNode{Input: input}).(*BlurNode)
}

func (rg *RenderGraph) Component(input Node, component string) *ComponentNode {
	return rg.Create(&ComponentNode{Input: input, Component: component}).(*ComponentNode)
}

func signature(name string, args ...Node) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if a == nil {
			parts[i] = "nil"
			continue
		}
		parts[i] = a.Signature()
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(parts, ","))
}
