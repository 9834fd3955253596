// Given a parsed chord chart, implements how to
// lay it out on a canvas.
// The resulting canvas is then serialized to SVG, or painted
// by a driver implementing the actual draw operations,
// such as a rasterizer to output .png images or a pdf writer.
package chartdraw
