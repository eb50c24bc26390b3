package ngsild

// UN/CEFACT unit-of-measure codes shared with the platform vocabulary.
// These values are part of the wire contract with the context broker and
// must not drift.
const (
	UnitCelsius          = "CEL"     // temperature
	UnitPercent          = "P1"      // humidity, occupancy, fill levels
	UnitHectopascal      = "HPA"     // atmospheric pressure
	UnitBar              = "BAR"     // water pressure
	UnitMetrePerSecond   = "MTS"     // wind speed
	UnitMillimetre       = "MMT"     // precipitation
	UnitKilometrePerHour = "KMH"     // vehicle speed
	UnitMicrogramPerM3   = "GQ"      // pollutant concentration
	UnitKilowattHour     = "KWH"     // energy
	UnitKilowatt         = "KWT"     // power
	UnitVolt             = "VLT"     // voltage
	UnitAmpere           = "AMP"     // current
	UnitHertz            = "HTZ"     // frequency
	UnitMetre            = "MTR"     // distance, height
	UnitCubicMetre       = "MTQ"     // volume
	UnitLitrePerMinute   = "LTR/MIN" // water flow rate
	UnitCubicMetrePerH   = "MTQ/H"   // drainage flow rate
	UnitDecibelMilliwatt = "DBM"     // signal strength
	UnitDegree           = "DD"      // wind direction
	UnitHour             = "HUR"     // operating hours
)
