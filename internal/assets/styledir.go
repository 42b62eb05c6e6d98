package assets

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// StyleDir loads user styles from {root}/styles/{name}.css.
// Files are opened through os.Root, so neither a name nor a symlink under
// root can reach a file outside it.
type StyleDir struct {
	root string
}

// OpenStyleDir checks that root is a directory and returns a StyleDir for it.
// A missing styles subdirectory is not an error: every lookup then falls
// through as ErrStyleNotFound.
func OpenStyleDir(root string) (*StyleDir, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidStyleDir)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStyleDir, err)
	}

	info, err := os.Stat(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s does not exist", ErrInvalidStyleDir, abs)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidStyleDir, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidStyleDir, abs)
	}

	return &StyleDir{root: abs}, nil
}

// Root returns the absolute directory styles are read from.
func (d *StyleDir) Root() string {
	return d.root
}

// LoadStyle reads {root}/styles/{name}.css.
func (d *StyleDir) LoadStyle(name string) (string, error) {
	if err := ValidateStyleName(name); err != nil {
		return "", err
	}

	root, err := os.OpenRoot(d.root)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidStyleDir, err)
	}
	defer root.Close()

	rel := filepath.FromSlash(stylePath(name))
	f, err := root.Open(rel)
	if err != nil {
		return "", openError(root, rel, name, err)
	}
	defer f.Close()

	css, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrStyleRead, name, err)
	}
	return string(css), nil
}

// openError classifies a failed open. os.Root does not export its escape
// error, so a symlink on the lookup path marks the escape.
func openError(root *os.Root, rel, name string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	for _, p := range []string{stylesSubdir, rel} {
		if info, lerr := root.Lstat(p); lerr == nil && info.Mode()&fs.ModeSymlink != 0 {
			return fmt.Errorf("%w: %q", ErrStyleOutsideDir, name)
		}
	}
	return fmt.Errorf("%w: %s: %v", ErrStyleRead, name, err)
}

var _ StyleLoader = (*StyleDir)(nil)
