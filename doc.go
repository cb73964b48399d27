// Package pagemap is the Composition Root for the pagemap build generator.
//
// It turns a directory of page modules into a multi-page build
// configuration: one compilation entry per page and one HTML document per
// page that loads only that page's bundle.
//
// Layout:
//
//   - pkg/core: identifiers, synthesis of targets and document directives,
//     and the invariant that ties them together.
//   - pkg/adapters/fs: page discovery and watching on the local filesystem.
//   - pkg/config: the static skeleton (loaders, resolution, dev server)
//     and the development/production overlays.
//
// Usage:
//
//	cfg, err := pagemap.Generate(ctx, "./app", pagemap.ModeFromEnv(),
//		pagemap.WithLogger(logger),
//	)
//
//	// cfg.Entry     -> {"login": "/app/src/pages/login.js", ...}
//	// cfg.Documents -> [{outputFilename: "login.html", allowedChunks: ["login"]}, ...]
package pagemap
