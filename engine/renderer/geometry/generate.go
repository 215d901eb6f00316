package geometry

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

/**
 * @brief Generates configuration for plane geometries given the provided parameters.
 * NOTE: vertex and index arrays are freshly allocated and owned by the returned config.
 *
 * @param width The overall width of the plane. Must be non-zero.
 * @param height The overall height of the plane. Must be non-zero.
 * @param xSegmentCount The number of segments along the x-axis in the plane. Must be non-zero.
 * @param ySegmentCount The number of segments along the y-axis in the plane. Must be non-zero.
 * @param tileX The number of times the texture should tile across the plane on the x-axis. Must be non-zero.
 * @param tileY The number of times the texture should tile across the plane on the y-axis. Must be non-zero.
 * @param name The name of the generated geometry.
 * @return A geometry configuration which can then be turned into a mesh.
 */
func GeneratePlaneConfig(width, height float32, xSegmentCount, ySegmentCount uint32, tileX, tileY float32, name string) *metadata.GeometryConfig {
	if width == 0 {
		core.LogWarn("Width must be nonzero. Defaulting to one.")
		width = 1.0
	}
	if height == 0 {
		core.LogWarn("Height must be nonzero. Defaulting to one.")
		height = 1.0
	}
	if xSegmentCount < 1 {
		core.LogWarn("xSegmentCount must be a positive number. Defaulting to one.")
		xSegmentCount = 1
	}
	if ySegmentCount < 1 {
		core.LogWarn("ySegmentCount must be a positive number. Defaulting to one.")
		ySegmentCount = 1
	}
	if tileX == 0 {
		core.LogWarn("tileX must be nonzero. Defaulting to one.")
		tileX = 1.0
	}
	if tileY == 0 {
		core.LogWarn("tileY must be nonzero. Defaulting to one.")
		tileY = 1.0
	}

	config := &metadata.GeometryConfig{
		Vertices: make([]metadata.Vertex3D, xSegmentCount*ySegmentCount*4), // 4 verts per segment
		Indices:  make([]uint32, xSegmentCount*ySegmentCount*6),            // 6 indices per segment
		Name:     name,
	}
	if len(config.Name) == 0 {
		config.Name = metadata.DefaultGeometryName
	}

	segWidth := width / float32(xSegmentCount)
	segHeight := height / float32(ySegmentCount)
	halfWidth := width * 0.5
	halfHeight := height * 0.5
	normal := mgl32.Vec3{0, 0, 1}
	white := mgl32.Vec4{1, 1, 1, 1}

	for y := uint32(0); y < ySegmentCount; y++ {
		for x := uint32(0); x < xSegmentCount; x++ {
			minX := (float32(x) * segWidth) - halfWidth
			minY := (float32(y) * segHeight) - halfHeight
			maxX := minX + segWidth
			maxY := minY + segHeight
			minUVX := (float32(x) / float32(xSegmentCount)) * tileX
			minUVY := (float32(y) / float32(ySegmentCount)) * tileY
			maxUVX := (float32(x+1) / float32(xSegmentCount)) * tileX
			maxUVY := (float32(y+1) / float32(ySegmentCount)) * tileY

			vOffset := ((y * xSegmentCount) + x) * 4
			v := config.Vertices[vOffset : vOffset+4]
			v[0] = metadata.Vertex3D{Position: mgl32.Vec3{minX, minY, 0}, Texcoord: mgl32.Vec2{minUVX, minUVY}}
			v[1] = metadata.Vertex3D{Position: mgl32.Vec3{maxX, maxY, 0}, Texcoord: mgl32.Vec2{maxUVX, maxUVY}}
			v[2] = metadata.Vertex3D{Position: mgl32.Vec3{minX, maxY, 0}, Texcoord: mgl32.Vec2{minUVX, maxUVY}}
			v[3] = metadata.Vertex3D{Position: mgl32.Vec3{maxX, minY, 0}, Texcoord: mgl32.Vec2{maxUVX, minUVY}}
			for i := range v {
				v[i].Normal = normal
				v[i].Colour = white
			}

			iOffset := ((y * xSegmentCount) + x) * 6
			copy(config.Indices[iOffset:iOffset+6], []uint32{
				vOffset + 0, vOffset + 1, vOffset + 2,
				vOffset + 0, vOffset + 3, vOffset + 1,
			})
		}
	}

	config.MinExtents = mgl32.Vec3{-halfWidth, -halfHeight, 0}
	config.MaxExtents = mgl32.Vec3{halfWidth, halfHeight, 0}
	return config
}

// cubeFaces lists, per face, the normal and the four corners as
// indices into the (min, max) extents of each axis.
var cubeFaces = []struct {
	normal  mgl32.Vec3
	corners [4][3]int
}{
	{mgl32.Vec3{0, 0, 1}, [4][3]int{{0, 0, 1}, {1, 1, 1}, {0, 1, 1}, {1, 0, 1}}},  // front
	{mgl32.Vec3{0, 0, -1}, [4][3]int{{1, 0, 0}, {0, 1, 0}, {1, 1, 0}, {0, 0, 0}}}, // back
	{mgl32.Vec3{-1, 0, 0}, [4][3]int{{0, 0, 0}, {0, 1, 1}, {0, 1, 0}, {0, 0, 1}}}, // left
	{mgl32.Vec3{1, 0, 0}, [4][3]int{{1, 0, 1}, {1, 1, 0}, {1, 1, 1}, {1, 0, 0}}},  // right
	{mgl32.Vec3{0, -1, 0}, [4][3]int{{1, 0, 1}, {0, 0, 0}, {1, 0, 0}, {0, 0, 1}}}, // bottom
	{mgl32.Vec3{0, 1, 0}, [4][3]int{{0, 1, 1}, {1, 1, 0}, {0, 1, 0}, {1, 1, 1}}},  // top
}

/**
 * @brief Generates configuration for cube geometries given the provided parameters.
 *
 * @param width The width of the cube. Must be non-zero.
 * @param height The height of the cube. Must be non-zero.
 * @param depth The depth of the cube. Must be non-zero.
 * @param tileX The number of times the texture should tile across the cube on the x-axis.
 * @param tileY The number of times the texture should tile across the cube on the y-axis.
 * @param name The name of the generated geometry.
 * @return A geometry configuration which can then be turned into a mesh.
 */
func GenerateCubeConfig(width, height, depth, tileX, tileY float32, name string) *metadata.GeometryConfig {
	if width == 0 {
		core.LogWarn("Width must be nonzero. Defaulting to one.")
		width = 1.0
	}
	if height == 0 {
		core.LogWarn("Height must be nonzero. Defaulting to one.")
		height = 1.0
	}
	if depth == 0 {
		core.LogWarn("Depth must be nonzero. Defaulting to one.")
		depth = 1.0
	}
	if tileX == 0 {
		core.LogWarn("tileX must be nonzero. Defaulting to one.")
		tileX = 1.0
	}
	if tileY == 0 {
		core.LogWarn("tileY must be nonzero. Defaulting to one.")
		tileY = 1.0
	}

	half := mgl32.Vec3{width * 0.5, height * 0.5, depth * 0.5}
	extents := [2]mgl32.Vec3{half.Mul(-1), half}
	uvs := [4]mgl32.Vec2{{0, 0}, {tileX, tileY}, {0, tileY}, {tileX, 0}}

	config := &metadata.GeometryConfig{
		Vertices: make([]metadata.Vertex3D, 0, 4*6), // 4 verts per side, 6 sides
		Indices:  make([]uint32, 0, 6*6),
		Name:     name,
		// Always 0 since min/max of each axis are -/+ half of the size.
		Center:     mgl32.Vec3{},
		MinExtents: extents[0],
		MaxExtents: extents[1],
	}
	if len(config.Name) == 0 {
		config.Name = metadata.DefaultGeometryName
	}

	for _, face := range cubeFaces {
		base := uint32(len(config.Vertices))
		for i, c := range face.corners {
			config.Vertices = append(config.Vertices, metadata.Vertex3D{
				Position: mgl32.Vec3{extents[c[0]].X(), extents[c[1]].Y(), extents[c[2]].Z()},
				Normal:   face.normal,
				Texcoord: uvs[i],
				Colour:   mgl32.Vec4{1, 1, 1, 1},
			})
		}
		config.Indices = append(config.Indices,
			base+0, base+1, base+2,
			base+0, base+3, base+1,
		)
	}

	return config
}
