package series

// Variable names the primary or ancillary column a value belongs to.
// Values match the column names in spec.md §3's record fields table.
type Variable string

const (
	VarSoilMoisture          Variable = "soil_moisture"
	VarSoilTemperature       Variable = "soil_temperature"
	VarAirTemperature        Variable = "air_temperature"
	VarSurfaceTemperature    Variable = "surface_temperature"
	VarPrecipitation         Variable = "precipitation"
	VarSoilSuction           Variable = "soil_suction"
	VarSnowWaterEquivalent   Variable = "snow_water_equivalent"
	VarSnowDepth             Variable = "snow_depth"
	VarGldasSoilTemperature  Variable = "gldas_soil_temperature"
	VarGldasPrecipitation    Variable = "gldas_precipitation"
)
