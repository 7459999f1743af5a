// Package csvfile reads and writes the hourly datasets the reports are
// computed from. Column names follow the building simulation export.
package csvfile

// Shared columns.
const (
	ColDatetime = "Datetime"
	ColAreaID   = "Area_ID"
)

// Simulation (validation) dataset columns.
const (
	ColPredictedIAT = "Average_indoor_air_temperature_(degreeC)"
	ColMeasuredIAT  = "Measured_average_indoor_air_temperature_(degreeC)"
	ColOAT          = "Outdoor_air_temperature_(degreeC)"
)

// Short-term forecast dataset columns.
const (
	ColIAT90 = "Average_indoor_air_temperature_90_percentile_(degreeC)"
	ColIAT50 = "Average_indoor_air_temperature_50_percentile_(degreeC)"
	ColIAT10 = "Average_indoor_air_temperature_10_percentile_(degreeC)"
	ColOAT90 = "Forecasted_outdoor_air_temperature_90_percentile_(degreeC)"
	ColOAT50 = "Forecasted_outdoor_air_temperature_50_percentile_(degreeC)"
	ColOAT10 = "Forecasted_outdoor_air_temperature_10_percentile_(degreeC)"
)

// TimeLayout is the timestamp format of the Datetime column.
const TimeLayout = "2006-01-02 15:04:05-07:00"

var timeLayouts = []string{
	TimeLayout,
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
}

// maxRowErrors bounds how many bad rows are reported for a single file.
const maxRowErrors = 20
