// Package pptx builds PresentationML documents in memory and writes them as
// .pptx packages.
//
// # Model
//
// A Presentation is created from a Template. The template supplies the slide
// size, the color palette, the theme fonts and the list of slide layouts with
// their placeholder geometry:
//
//	Template
//	    ├── Palette / Fonts     -> theme1.xml, slideMaster1.xml text styles
//	    └── Layouts[i]          -> slideLayout{i+1}.xml
//	            └── Placeholders (idx, type, geometry)
//
// Templates come from a YAML descriptor or from a designer's .pptx package
// (ReadTemplate). A package template keeps its slide master, layouts, theme
// and their media byte-for-byte; the writer re-emits them in place of the
// generated master and theme, and slides point at the kept layouts.
//
// AddSlide instantiates a layout: every placeholder of the layout is copied
// onto the slide as an empty Placeholder shape that callers fill or remove.
// Free-standing shapes (TextBox, Picture, Table, Chart) are appended with the
// Add* methods.
//
// # Writing
//
// Presentation.Write streams the zip package. Part order follows the
// conventional layout produced by Office: content types, package rels,
// document properties, presentation part, master, layouts, theme, slides,
// media and charts.
//
// All geometry is expressed in EMU (914400 per inch, 12700 per point).
package pptx
