// Package ngsild builds NGSI-LD entity documents (Property, Relationship,
// GeoProperty) from typed domain values, using a fixed hand-curated
// vocabulary. It performs no generic JSON-LD processing.
package ngsild

// CoreContext is the NGSI-LD core context document every entity references.
const CoreContext = "https://uri.etsi.org/ngsi-ld/v1/ngsi-ld-core-context.jsonld"

// SmartDataModels is the FIWARE smart data models context.
const SmartDataModels = "https://smartdatamodels.org/context.jsonld"

// customTerms maps the platform vocabulary onto stable URIs.
var customTerms = map[string]any{
	"sosa":      "http://www.w3.org/ns/sosa/",
	"ssn":       "http://www.w3.org/ns/ssn/",
	"geo":       "http://www.w3.org/2003/01/geo/wgs84_pos#",
	"schema":    "https://schema.org/",
	"smartcity": "https://smartcity.example.com/ontology#",

	"temperature":     "smartcity:temperature",
	"humidity":        "smartcity:humidity",
	"pressure":        "smartcity:pressure",
	"airQualityIndex": "smartcity:airQualityIndex",
	"pm25":            "smartcity:pm25",
	"pm10":            "smartcity:pm10",
	"no2":             "smartcity:no2",
	"o3":              "smartcity:o3",
	"co":              "smartcity:co",
	"so2":             "smartcity:so2",

	"observes":         "sosa:observes",
	"isHostedBy":       "sosa:isHostedBy",
	"madeObservation":  "sosa:madeObservation",
	"observedProperty": "sosa:observedProperty",
	"madeBySensor":     "sosa:madeBySensor",
	"hasSimpleResult":  "sosa:hasSimpleResult",
	"resultTime":       "sosa:resultTime",
	"phenomenonTime":   "sosa:phenomenonTime",
}

// Context returns the @context array attached to every entity: the core
// context followed by the custom term map.
func Context() []any {
	terms := make(map[string]any, len(customTerms))
	for k, v := range customTerms {
		terms[k] = v
	}
	return []any{CoreContext, terms}
}

// ContextDocument returns the payload served by the context endpoint.
func ContextDocument() map[string]any {
	return map[string]any{"@context": Context()}
}
