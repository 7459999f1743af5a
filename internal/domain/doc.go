// Package domain models the overheating-risk computations behind the thermal
// comfort dashboard: indoor air temperature (IAT) series per area, their
// classification into overheating hours, and the temporal roll-ups shown to
// building-performance analysts.
//
// # Data Sources
//
// Three hourly datasets feed the service, all produced by the thermal model:
//
//	simulation   predicted and measured IAT plus outdoor air temperature (OAT),
//	             used to validate the model against sensor data.
//	short-term   P10/P50/P90 forecast bands of IAT and OAT for the coming months.
//	long-term    predicted IAT under climate-scenario weather for many years,
//	             restricted to the summer months (May to September).
//
// Every series belongs to an area (a dwelling, building or zone) identified by
// a non-negative integer AreaID. Areas are displayed as "<AreaType> <id>",
// e.g. "Dwelling 3".
//
// # Overheating Conventions
//
// An hour is an overheating hour when IAT is strictly above the configured
// threshold. A night overheating hour is an hour inside the night window where
// IAT is at or above the threshold. Outside the night window the night flag is
// undefined, so night percentages are taken over night hours only:
//
//	overheating %        = 100 * overheating hours / all hours in the year
//	night overheating %  = 100 * night overheating hours / night hours in the year
//
// The night window uses an inclusive wrap-around test:
//
//	hour >= start || hour <= end
//
// With start=22, end=7 this covers 22:00-07:59. When start <= end every hour
// satisfies the test and the whole day counts as night. This is the observed
// behaviour of the dashboard and is kept as is.
//
// # Risk
//
// A year is an overheating year for an area when its overheating percentage
// exceeds the acceptable annual percentage. The risk of an area is the share
// of years that are overheating years, shown as "1 out of N summers".
//
// # Missing Values
//
// Undefined results (a percentage over zero eligible hours, a horizon beyond
// the end of the data) are nil pointers and serialize to JSON null. They are
// never reported as zero.
package domain
