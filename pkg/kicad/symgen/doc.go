// Package symgen computes the layout of rectangular schematic symbols: body
// size, outline corners and the position, orientation and number of every pin.
//
// All functions are pure. Compute is the single entry point used by both the
// library serializers and the preview renderer, so a symbol is laid out once
// and drawn or written from the same Geometry.
package symgen
