package api

import "strings"

// Regional routes.
const (
	RegionAmericas = "americas"
	RegionAsia     = "asia"
	RegionEurope   = "europe"
	RegionSEA      = "sea"
)

// DefaultPlatform is used when no platform is configured.
const DefaultPlatform = "na1"

var platformRegions = map[string]string{
	"na1":  RegionAmericas,
	"br1":  RegionAmericas,
	"la1":  RegionAmericas,
	"la2":  RegionAmericas,
	"kr":   RegionAsia,
	"jp1":  RegionAsia,
	"euw1": RegionEurope,
	"eun1": RegionEurope,
	"tr1":  RegionEurope,
	"ru":   RegionEurope,
	"me1":  RegionEurope,
	"oc1":  RegionSEA,
	"ph2":  RegionSEA,
	"sg2":  RegionSEA,
	"th2":  RegionSEA,
	"tw2":  RegionSEA,
	"vn2":  RegionSEA,
}

// NormalizePlatform lowercases and trims a platform name.
func NormalizePlatform(platform string) string {
	return strings.ToLower(strings.TrimSpace(platform))
}

// RegionForPlatform returns the regional route serving a platform.
func RegionForPlatform(platform string) (string, bool) {
	region, ok := platformRegions[NormalizePlatform(platform)]
	return region, ok
}

// IsRegion reports whether region is a known regional route.
func IsRegion(region string) bool {
	switch strings.ToLower(strings.TrimSpace(region)) {
	case RegionAmericas, RegionAsia, RegionEurope, RegionSEA:
		return true
	}
	return false
}

// AccountRegion returns the route used for account-v1 calls. Account data is
// not served from sea, so those platforms use asia.
func AccountRegion(region string) string {
	if region == RegionSEA {
		return RegionAsia
	}
	return region
}
