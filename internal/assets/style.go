package assets

import (
	"errors"
	"fmt"
	"regexp"
)

// Sentinel errors for style lookups.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidStyleName = errors.New("invalid style name")
	ErrInvalidStyleDir  = errors.New("invalid style directory")
	ErrStyleRead        = errors.New("failed to read style")
	ErrStyleOutsideDir  = errors.New("style resolves outside its directory")
)

const (
	// DefaultStyleName is the built-in stylesheet used when none is chosen.
	DefaultStyleName = "default"

	// MaxStyleNameLength caps a style name, not a path or inline CSS.
	MaxStyleNameLength = 64

	stylesSubdir = "styles"
	styleExt     = ".css"
)

// A style name is a bare file stem: "default", "github-dark", "print_2".
var styleNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// StyleLoader loads a stylesheet by name.
type StyleLoader interface {
	// LoadStyle returns the CSS for name, ErrStyleNotFound when no such
	// style exists or ErrInvalidStyleName when name is not a bare stem.
	LoadStyle(name string) (string, error)
}

// ValidateStyleName reports whether name can select {name}.css.
// Only letters, digits, '-' and '_' are allowed, so a name can never carry a
// separator, an extension or a traversal.
func ValidateStyleName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidStyleName)
	case len(name) > MaxStyleNameLength:
		return fmt.Errorf("%w: %d chars, max %d", ErrInvalidStyleName, len(name), MaxStyleNameLength)
	case !styleNamePattern.MatchString(name):
		return fmt.Errorf("%w: %q (letters, digits, '-' and '_' only)", ErrInvalidStyleName, name)
	}
	return nil
}

// stylePath is the slash-separated location of a style in an asset tree.
func stylePath(name string) string {
	return stylesSubdir + "/" + name + styleExt
}
