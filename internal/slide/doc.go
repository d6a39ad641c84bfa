package slide

// Package slide reads whole-slide images: it parses classic-TIFF and BigTIFF
// directory structures natively to expose dimensions, resolution levels, and
// tiling, and extracts pixel regions through the vips CLI without decoding
// the full image.
