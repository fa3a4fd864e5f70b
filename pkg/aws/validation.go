package aws

import (
	"fmt"
	"strings"

	"pinctl/pkg/errors"
)

var regionPrefixes = map[string]bool{
	"us": true, "eu": true, "ap": true, "ca": true, "sa": true,
	"me": true, "af": true, "il": true, "mx": true, "cn": true, "us-gov": true,
}

var regionDirections = map[string]bool{
	"east": true, "west": true, "north": true, "south": true, "central": true,
	"northeast": true, "southeast": true, "northwest": true, "southwest": true,
}

// IsValidAWSRegion reports whether region is a well-formed AWS region name:
// xx-direction-n (us-east-1) or us-gov-direction-n (us-gov-west-1).
// Well-formed names that do not exist still pass; the service call will then
// fail with a name resolution error.
func IsValidAWSRegion(region string) bool {
	parts := strings.Split(region, "-")
	if len(parts) == 4 && parts[0] == "us" && parts[1] == "gov" {
		parts = []string{"us-gov", parts[2], parts[3]}
	}
	if len(parts) != 3 {
		return false
	}

	if !regionPrefixes[parts[0]] {
		return false
	}
	if parts[0] == "us-gov" {
		if parts[1] != "east" && parts[1] != "west" {
			return false
		}
	} else if !regionDirections[parts[1]] {
		return false
	}

	n := parts[2]
	if len(n) < 1 || len(n) > 2 || n == "0" || n[0] == '0' {
		return false
	}
	for _, c := range n {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// IsValidRegionShortcode checks if a string is a known region shortcode (e.g. use1)
func IsValidRegionShortcode(shortcode string) bool {
	_, exists := RegionMapping[shortcode]
	return exists
}

// ValidateRegionInput accepts a shortcode or a full region name in any case and
// returns the lowercase region name
func ValidateRegionInput(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", errors.NewValidationError("region cannot be empty").WithContext("field", "region")
	}

	lowered := strings.ToLower(input)
	if fullRegion, exists := RegionMapping[lowered]; exists {
		return fullRegion, nil
	}
	if IsValidAWSRegion(lowered) {
		return lowered, nil
	}

	return "", errors.NewValidationError(fmt.Sprintf(
		"region '%s' is invalid: must be a valid AWS region (e.g., us-east-1, ca-central-1) or shortcode (e.g., use1, cac1)",
		input)).WithContext("field", "region")
}
