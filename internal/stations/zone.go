package stations

import (
	"fmt"
	"math"
	"time"
	_ "time/tzdata" // station zones on hosts without a zoneinfo database
)

type zoneKey struct {
	offset int
	dst    bool
}

// usZones maps a standard UTC offset and DST observance to the IANA zone NOAA
// stations in that offset use.
var usZones = map[zoneKey]string{
	{-4, false}:  "America/Puerto_Rico",
	{-5, true}:   "America/New_York",
	{-6, true}:   "America/Chicago",
	{-7, true}:   "America/Denver",
	{-7, false}:  "America/Phoenix",
	{-8, true}:   "America/Los_Angeles",
	{-9, true}:   "America/Anchorage",
	{-10, true}:  "America/Adak",
	{-10, false}: "Pacific/Honolulu",
	{-11, false}: "Pacific/Pago_Pago",
	{10, false}:  "Pacific/Guam",
}

// stationZone turns an MDAPI timezonecorr (hours from UTC) and observedst
// flag into a location. Offsets without a known zone get a fixed zone, which
// is exact for stations that do not observe DST.
func stationZone(corrHours float64, observesDST bool) *time.Location {
	if math.IsNaN(corrHours) || math.IsInf(corrHours, 0) || math.Abs(corrHours) > 14 {
		return nil
	}
	if corrHours == math.Trunc(corrHours) {
		if name, ok := usZones[zoneKey{int(corrHours), observesDST}]; ok {
			if loc, err := time.LoadLocation(name); err == nil {
				return loc
			}
		}
	}
	seconds := int(corrHours * 3600)
	return time.FixedZone(fmt.Sprintf("UTC%+.4g", corrHours), seconds)
}
