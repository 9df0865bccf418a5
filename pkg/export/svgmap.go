package export

import (
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/vanderheijden86/phylomap/pkg/aggregate"
)

// SVGMap writes an equirectangular scatter map of the result's samples.
// The full WGS 84 extent maps onto the canvas, so marker positions are
// comparable across exports regardless of where the samples cluster.
func SVGMap(w io.Writer, res aggregate.Result, width, height int) {
	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Title(res.NodeLabel)
	canvas.Rect(0, 0, width, height, "fill:#0b1d2a")

	// Graticule every 30 degrees.
	for lon := -180; lon <= 180; lon += 30 {
		x := projectX(float64(lon), width)
		canvas.Line(x, 0, x, height, "stroke:#1e3a4f;stroke-width:1")
	}
	for lat := -90; lat <= 90; lat += 30 {
		y := projectY(float64(lat), height)
		canvas.Line(0, y, width, y, "stroke:#1e3a4f;stroke-width:1")
	}

	for _, s := range res.Samples {
		x := projectX(s.Coord.Lon, width)
		y := projectY(s.Coord.Lat, height)
		canvas.Circle(x, y, 4, "fill:#ffb347;fill-opacity:0.8;stroke:#fff;stroke-width:1")
	}

	canvas.Text(10, height-10, res.NodeLabel, "fill:#e0e6eb;font-family:sans-serif;font-size:12px")
	canvas.End()
}

func projectX(lon float64, width int) int {
	return int((lon + 180) / 360 * float64(width))
}

func projectY(lat float64, height int) int {
	return int((90 - lat) / 180 * float64(height))
}
