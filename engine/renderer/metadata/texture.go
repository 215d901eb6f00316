package metadata

type TextureFlag int

const (
	/** @brief Indicates if the texture can be written (rendered) to. */
	TextureFlagIsWriteable TextureFlag = 0x1
	/** @brief Indicates the texture holds depth values. */
	TextureFlagDepth TextureFlag = 0x2
)

/** @brief Holds bit flags for textures.. */
type TextureFlagBits uint8

func (b TextureFlagBits) Has(flag TextureFlag) bool {
	return b&TextureFlagBits(flag) != 0
}

/**
 * @brief Represents various types of textures.
 */
type TextureType int

const (
	/** @brief A standard two-dimensional texture. */
	TextureType2d TextureType = iota
	/** @brief A cube texture, used for cubemaps. */
	TextureTypeCube
)

/**
 * @brief Represents a texture. The renderer only ever handles these as
 * opaque handles; InternalData belongs to whichever backend created it.
 */
type Texture struct {
	/** @brief The unique texture identifier. */
	ID uint32
	/** @brief The texture type. */
	TextureType TextureType
	/** @brief The texture Width. */
	Width uint32
	/** @brief The texture Height. */
	Height uint32
	/** @brief Holds various Flags for this texture. */
	Flags TextureFlagBits
	/** @brief The texture Name. */
	Name string
	/** @brief Backend specific data. */
	InternalData interface{}
}

// CubeMap is a six sided texture sampled by sky boxes.
type CubeMap struct {
	Name    string
	Texture *Texture
}

func NewCubeMap(name string) *CubeMap {
	return &CubeMap{
		Name: name,
		Texture: &Texture{
			TextureType: TextureTypeCube,
			Name:        name,
		},
	}
}
