// Package export writes sampled points and their zonal statistics to
// shapefiles for inspection in GIS tools.
package export

import (
	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/spatial-sim/internal/zonal"
)

// WritePoints writes one point per zonal result to a point shapefile at
// path, preserving result order. Attributes: IDX (flat cell index), MEAN
// (zonal mean, empty for missing results), VALID (T/F).
func WritePoints(path string, results []zonal.Result) error {
	if len(results) == 0 {
		return eris.New("export: no results to write")
	}

	w, err := shp.Create(path, shp.POINT)
	if err != nil {
		return eris.Wrapf(err, "export: create shapefile %s", path)
	}
	defer w.Close()

	fields := []shp.Field{
		shp.NumberField("IDX", 10),
		shp.FloatField("MEAN", 19, 8),
		shp.StringField("VALID", 1),
	}
	w.SetFields(fields)

	missing := 0
	for n, r := range results {
		w.Write(&shp.Point{X: r.X, Y: r.Y})

		if err := w.WriteAttribute(n, 0, r.Index); err != nil {
			return eris.Wrapf(err, "export: write IDX for record %d", n)
		}
		valid := "F"
		if r.Valid {
			valid = "T"
			if err := w.WriteAttribute(n, 1, r.Mean); err != nil {
				return eris.Wrapf(err, "export: write MEAN for record %d", n)
			}
		} else {
			missing++
		}
		if err := w.WriteAttribute(n, 2, valid); err != nil {
			return eris.Wrapf(err, "export: write VALID for record %d", n)
		}
	}

	zap.L().Info("shapefile written",
		zap.String("component", "export"),
		zap.String("path", path),
		zap.Int("points", len(results)),
		zap.Int("missing", missing),
	)
	return nil
}
