// Package assets provides the CSS stylesheets used for standalone HTML output.
//
// # Loader Architecture
//
//	StyleLoader (interface)
//	    │
//	    ├── EmbeddedLoader  - loads from go:embed filesystem (built-in styles)
//	    ├── StyleDir        - loads from a user directory on disk
//	    └── AssetResolver   - combines both with user-first fallback
//
// AssetResolver is the loader used by the converter. A custom directory can
// override any built-in style by name and add new ones.
//
// # Directory Structure
//
//	{assetPath}/
//	└── styles/
//	    └── {name}.css
//
// # Security
//
// Style names are an allowlist of letters, digits, '-' and '_'. StyleDir
// opens files through os.Root, which refuses symlinks leading out of the
// directory.
package assets
