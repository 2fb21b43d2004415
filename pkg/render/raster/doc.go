// Package raster paints [render.Frame] values into images with gg.
//
// It mirrors the SVG adapter without shelling out to rsvg-convert, so PNG
// output works on machines without librsvg. Titles are drawn with the same
// Go regular face the scene measures them with, which keeps the centered
// title where the layout put it.
package raster
