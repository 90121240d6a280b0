package models

import "strings"

// APIVersion is a URL-segment API version such as "1.0".
type APIVersion string

const (
	APIVersion1 APIVersion = "1.0"
	APIVersion2 APIVersion = "2.0"

	DefaultAPIVersion = APIVersion1
)

// SupportedAPIVersions в порядке публикации документов.
var SupportedAPIVersions = []APIVersion{APIVersion1, APIVersion2}

// ParseAPIVersion normalizes a version segment ("1", "1.0", "V2.0") and reports
// whether it names a supported version. An empty string yields the default.
func ParseAPIVersion(raw string) (APIVersion, bool) {
	v := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(raw)), "v")
	if v == "" {
		return DefaultAPIVersion, true
	}
	if !strings.Contains(v, ".") {
		v += ".0"
	}
	for _, supported := range SupportedAPIVersions {
		if APIVersion(v) == supported {
			return supported, true
		}
	}
	return "", false
}

// Major returns the major component, "1" for "1.0".
func (v APIVersion) Major() string {
	major, _, _ := strings.Cut(string(v), ".")
	return major
}

func (v APIVersion) String() string {
	return string(v)
}

// SupportedAPIVersionsHeader is the value of the api-supported-versions header.
func SupportedAPIVersionsHeader() string {
	parts := make([]string, len(SupportedAPIVersions))
	for i, v := range SupportedAPIVersions {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
