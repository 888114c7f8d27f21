package screenshot

import (
	"fmt"

	"github.com/ibeckermayer/mockshot/internal/serializer"
	"github.com/ibeckermayer/mockshot/internal/types"
)

// validate checks a request and resolves its scale
func (s *Service) validate(req serializer.Request) (serializer.SerializedPost, int, error) {
	if req.Mockup == nil {
		return serializer.SerializedPost{}, 0, fmt.Errorf("%w: mockup is required", ErrInvalidRequest)
	}
	sp := *req.Mockup

	if sp.Platform == "" {
		return sp, 0, fmt.Errorf("%w: mockup.platform is required", ErrInvalidRequest)
	}
	if _, err := serializer.ParseTimestamp(sp.Timestamp); err != nil {
		return sp, 0, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if len(sp.Images) > types.MaxImages {
		return sp, 0, fmt.Errorf("%w: at most %d images allowed, got %d", ErrInvalidRequest, types.MaxImages, len(sp.Images))
	}

	scale := req.Scale
	switch scale {
	case 0:
		scale = s.cfg.DefaultScale
	case 1, 2, 3:
	default:
		return sp, 0, fmt.Errorf("%w: scale must be 1, 2 or 3, got %d", ErrInvalidRequest, req.Scale)
	}

	return sp, scale, nil
}

// platformLabel keeps metric label cardinality bounded for rejected requests
func platformLabel(req serializer.Request) string {
	if req.Mockup != nil && req.Mockup.Platform.Valid() {
		return string(req.Mockup.Platform)
	}
	return "unknown"
}
