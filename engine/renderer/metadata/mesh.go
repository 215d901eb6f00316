package metadata

import "github.com/go-gl/mathgl/mgl32"

/** @brief The name of the default geometry. */
const DefaultGeometryName string = "default"

/**
 * @brief Represents a single vertex in 3D space.
 */
type Vertex3D struct {
	/** @brief The position of the vertex */
	Position mgl32.Vec3
	/** @brief The normal of the vertex. */
	Normal mgl32.Vec3
	/** @brief The texture coordinate of the vertex. */
	Texcoord mgl32.Vec2
	/** @brief The colour of the vertex. */
	Colour mgl32.Vec4
	/** @brief The tangent of the vertex. */
	Tangent mgl32.Vec3
}

/**
 * @brief Represents the configuration for a geometry.
 */
type GeometryConfig struct {
	Vertices   []Vertex3D
	Indices    []uint32
	Center     mgl32.Vec3
	MinExtents mgl32.Vec3
	MaxExtents mgl32.Vec3
	/** @brief The Name of the geometry. */
	Name string
}

// Mesh is an immutable piece of geometry shared between entities.
type Mesh struct {
	UniqueID uint32
	Name     string
	Geometry *GeometryConfig
}
