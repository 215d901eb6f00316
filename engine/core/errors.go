package core

import (
	"errors"
)

var (
	ErrInvalidRenderPass    = errors.New("invalid render pass")
	ErrInvalidConfig        = errors.New("invalid configuration")
	ErrUnknownScene         = errors.New("unknown scene")
	ErrUnknownCamera        = errors.New("unknown camera")
	ErrUnknownTarget        = errors.New("unknown render target")
	ErrNoViews              = errors.New("frame has no views")
	ErrDuplicateView        = errors.New("duplicate view name")
	ErrInvalidCommandStream = errors.New("invalid command stream")
)
