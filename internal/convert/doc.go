package convert

// Package convert rewrites flat TIFF slides as tiled, pyramidal TIFFs by
// driving the libvips command-line tool.
