package metadata

/**
 * @brief A bindable material produced by a material factory for one
 * (render graph, light type) combination. Opaque to the queue builder.
 */
type Material struct {
	/** @brief The material id. */
	ID uint32
	/** @brief The material name. */
	Name string
	/** @brief Backend specific data (pipelines, descriptor sets...). */
	InternalData interface{}
}
