package jsonutil

// Feature names one configuration flag.
// Use these constants with Config.With and in configuration files.
type Feature string

const (
	// FeatureExpose restricts (de)serialization to fields tagged `expose`.
	FeatureExpose Feature = "expose"

	// FeatureDate adapts Date values.
	FeatureDate Feature = "date"

	// FeatureLocalDate adapts LocalDate values.
	FeatureLocalDate Feature = "local_date"

	// FeatureLocalDateTime adapts LocalDateTime values.
	FeatureLocalDateTime Feature = "local_date_time"

	// FeatureXMLCalendar adapts XMLCalendar values.
	FeatureXMLCalendar Feature = "xml_calendar"

	// FeatureByteArray encodes []byte as MIME Base64 and disables HTML escaping.
	FeatureByteArray Feature = "byte_array"

	// FeatureEnum encodes Enum implementations as objects.
	FeatureEnum Feature = "enum"
)

// allFeatures lists features in compilation order.
var allFeatures = []Feature{
	FeatureExpose,
	FeatureDate,
	FeatureLocalDate,
	FeatureLocalDateTime,
	FeatureXMLCalendar,
	FeatureByteArray,
	FeatureEnum,
}

// validFeatures contains all valid features for configuration validation.
var validFeatures = map[Feature]bool{
	FeatureExpose:        true,
	FeatureDate:          true,
	FeatureLocalDate:     true,
	FeatureLocalDateTime: true,
	FeatureXMLCalendar:   true,
	FeatureByteArray:     true,
	FeatureEnum:          true,
}

// IsValidFeature returns true if f is a known feature.
func IsValidFeature(f Feature) bool {
	return validFeatures[f]
}

// Features returns every known feature in compilation order.
func Features() []Feature {
	out := make([]Feature, len(allFeatures))
	copy(out, allFeatures)
	return out
}
