package mdconv

import (
	"errors"

	"github.com/alnah/go-mdconv/internal/assets"
)

// DefaultStyle is the name of the built-in stylesheet.
const DefaultStyle = assets.DefaultStyleName

// StyleNames lists the built-in stylesheet names accepted by WithStyle.
func StyleNames() []string {
	return assets.NewEmbeddedLoader().StyleNames()
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrStyleNotFound),
		errors.Is(err, assets.ErrInvalidStyleName): // an invalid name cannot exist
		return &wrappedAssetError{sentinel: ErrStyleNotFound, original: err}
	case errors.Is(err, assets.ErrInvalidStyleDir),
		errors.Is(err, assets.ErrStyleOutsideDir):
		return &wrappedAssetError{sentinel: ErrInvalidAssetPath, original: err}
	default:
		return err
	}
}

// wrappedAssetError keeps the internal message while matching the public
// sentinel with errors.Is.
type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel. Internal errors are not exposed.
func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}
