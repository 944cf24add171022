package utils

// ServiceReport is the structure of the /service endpoint response.
type ServiceReport struct {
	Version Version        `json:"version"`
	Health  Health         `json:"health"`
	Metrics SystemMetrics  `json:"metrics"`
	Config  map[string]any `json:"config,omitempty"`
}

// Version pairs the formatted version string with its parsed components.
type Version struct {
	Tag string        `json:"tag"`
	Str string        `json:"str"`
	Obj VersionObject `json:"obj"`
}

// VersionObject holds the components of a parsed version string.
type VersionObject struct {
	Major     string `json:"major"`
	Minor     string `json:"minor"`
	Patch     string `json:"patch"`
	Branch    string `json:"branch"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	Arch      string `json:"arch"`
	BuildHash string `json:"build_hash,omitempty"`
}
