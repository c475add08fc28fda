package geo

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Coord is a latitude/longitude pair.
type Coord struct {
	Lat float64
	Lon float64
}

// NakheelMall is the default report origin.
var NakheelMall = Coord{Lat: 26.4398, Lon: 50.1057}

// AreaDistance is one row of the area distance report.
type AreaDistance struct {
	Area string
	Lat  float64
	Lon  float64
	KM   float64
}

// BuildAreaReport scrapes the districts of a named area and computes the
// road distance from origin to each, capped at limit districts. Individual
// distance failures contribute a 0 row rather than failing the report.
func BuildAreaReport(ctx context.Context, c *Client, area string, origin Coord, limit int) ([]AreaDistance, error) {
	districts, err := c.Districts(ctx, area)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(districts) > limit {
		districts = districts[:limit]
	}

	log.Info().Str("area", area).Int("districts", len(districts)).Msg("Building area distance report")

	rows := make([]AreaDistance, 0, len(districts))
	for _, d := range districts {
		if ctx.Err() != nil {
			return rows, ctx.Err()
		}
		rows = append(rows, AreaDistance{
			Area: d.Name,
			Lat:  d.Lat,
			Lon:  d.Lon,
			KM:   c.RoadDistanceKM(ctx, origin.Lat, origin.Lon, d.Lat, d.Lon),
		})
	}
	return rows, nil
}
