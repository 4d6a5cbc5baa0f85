// Package io reads item lists and writes computed layouts.
//
// # Item Files
//
// Item lists are accepted as JSON, YAML or TOML, chosen by file extension.
// Every format holds a top-level "items" list:
//
//	{
//	  "items": [
//	    {"id": "beach", "aspect_ratio": 1.5},
//	    {"id": "portrait", "width": 1080, "height": 1350},
//	    {"aspect_ratio": 1.78, "crop": {"left": 0, "top": 0.1, "right": 1, "bottom": 0.9}}
//	  ]
//	}
//
// JSON and YAML files may also hold the bare list. The same list in TOML:
//
//	[[items]]
//	id = "beach"
//	aspect_ratio = 1.5
//
// # Item Fields
//
//   - id: unique identifier; a random UUID is assigned when omitted
//   - aspect_ratio: width / height of the original frame
//   - width, height: pixel size, used when aspect_ratio is omitted
//   - crop: optional crop override (left, top, right, bottom, orientation)
//
// Ratios that are missing, zero or negative are kept as given; the layout
// engine replaces them with a small positive epsilon.
//
// # Layout Output
//
// [WriteLayout] and [WriteGroups] encode layouts as indented JSON, the same
// document the HTTP server returns.
package io
