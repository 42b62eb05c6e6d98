package assets

import (
	"errors"
)

// AssetResolver tries a user StyleDir first and falls back to the embedded
// styles when a name is not found there.
type AssetResolver struct {
	custom   *StyleDir // nil without an asset path
	embedded *EmbeddedLoader
}

// NewAssetResolver creates an AssetResolver.
// An empty assetPath uses embedded styles only; a non-empty one must be a
// directory (see OpenStyleDir).
func NewAssetResolver(assetPath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if assetPath != "" {
		dir, err := OpenStyleDir(assetPath)
		if err != nil {
			return nil, err
		}
		resolver.custom = dir
	}

	return resolver, nil
}

// LoadStyle loads a CSS style, trying the user directory first if any.
// Only ErrStyleNotFound falls back; other errors are returned as is.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadStyle(name)
	}

	content, err := r.custom.LoadStyle(name)
	if err == nil {
		return content, nil
	}
	if !errors.Is(err, ErrStyleNotFound) {
		return "", err
	}

	return r.embedded.LoadStyle(name)
}

// StyleNames lists the built-in style names.
func (r *AssetResolver) StyleNames() []string {
	return r.embedded.StyleNames()
}

// HasCustomLoader returns true if a user style directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

var _ StyleLoader = (*AssetResolver)(nil)
