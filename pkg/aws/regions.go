package aws

import (
	"sort"
	"strings"
)

// Region describes an AWS region and whether the Pinpoint messaging APIs run there
type Region struct {
	Code        string
	Name        string
	Description string
	// Messaging is true where Pinpoint, Pinpoint Email and SMS/Voice endpoints exist
	Messaging bool
}

var regions = []Region{
	{"cac1", "ca-central-1", "Canada Central (Montreal)", true},
	{"caw1", "ca-west-1", "Canada West (Calgary)", false},
	{"use1", "us-east-1", "US East (N. Virginia)", true},
	{"use2", "us-east-2", "US East (Ohio)", true},
	{"usw1", "us-west-1", "US West (N. California)", false},
	{"usw2", "us-west-2", "US West (Oregon)", true},
	{"euw1", "eu-west-1", "EU West (Ireland)", true},
	{"euw2", "eu-west-2", "EU West (London)", true},
	{"euw3", "eu-west-3", "EU West (Paris)", false},
	{"euc1", "eu-central-1", "EU Central (Frankfurt)", true},
	{"eun1", "eu-north-1", "EU North (Stockholm)", false},
	{"aps1", "ap-south-1", "Asia Pacific South (Mumbai)", true},
	{"apse1", "ap-southeast-1", "Asia Pacific Southeast (Singapore)", true},
	{"apse2", "ap-southeast-2", "Asia Pacific Southeast (Sydney)", true},
	{"apne1", "ap-northeast-1", "Asia Pacific Northeast (Tokyo)", true},
	{"apne2", "ap-northeast-2", "Asia Pacific Northeast (Seoul)", true},
	{"apne3", "ap-northeast-3", "Asia Pacific Northeast (Osaka)", false},
	{"sae1", "sa-east-1", "South America East (São Paulo)", false},
	{"afs1", "af-south-1", "Africa South (Cape Town)", false},
	{"mec1", "me-central-1", "Middle East Central (UAE)", false},
	{"ugw1", "us-gov-west-1", "AWS GovCloud (US-West)", true},
}

// RegionMapping maps shortcodes to AWS region names
var RegionMapping = func() map[string]string {
	m := make(map[string]string, len(regions))
	for _, r := range regions {
		m[r.Code] = r.Name
	}
	return m
}()

// GetRegionDescription returns a human-readable description for a shortcode or region name
func GetRegionDescription(region string) string {
	if r, ok := lookupRegion(region); ok {
		return r.Description
	}
	return "Unknown Region"
}

// GetRegionCode returns the shortcode for an AWS region name, or the name itself if none exists
func GetRegionCode(awsRegion string) string {
	if r, ok := lookupRegion(awsRegion); ok {
		return r.Code
	}
	return awsRegion
}

// SupportsMessaging reports whether the Pinpoint messaging APIs are known to run in region.
// Unknown regions report false.
func SupportsMessaging(region string) bool {
	r, ok := lookupRegion(region)
	return ok && r.Messaging
}

// ListRegions returns the known regions sorted by region name
func ListRegions() []Region {
	out := make([]Region, len(regions))
	copy(out, regions)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func lookupRegion(s string) (Region, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, r := range regions {
		if r.Code == s || r.Name == s {
			return r, true
		}
	}
	return Region{}, false
}
