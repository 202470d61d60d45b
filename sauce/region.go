package sauce

import "fmt"

// Region is a Sauce Labs data center.
type Region string

// Known data centers. Legacy addresses the pre-region hosts.
const (
	USWest1        Region = "us-west-1"
	EUCentral1     Region = "eu-central-1"
	APACSoutheast1 Region = "apac-southeast-1"
	Legacy         Region = "legacy"
)

// DefaultRegion is used when none is configured.
const DefaultRegion = USWest1

// ParseRegion maps a region name to a Region. The empty string selects
// DefaultRegion.
func ParseRegion(s string) (Region, error) {
	switch r := Region(s); r {
	case "":
		return DefaultRegion, nil
	case USWest1, EUCentral1, APACSoutheast1, Legacy:
		return r, nil
	}
	return "", fmt.Errorf("sauce: unknown region %q", s)
}

// Endpoint returns the URL to use for driving a remote web browser in the
// region. The URL carries no credentials; those go in Options.
func Endpoint(r Region) string {
	if r == Legacy {
		return "https://ondemand.saucelabs.com:443/wd/hub"
	}
	if r == "" {
		r = DefaultRegion
	}
	return fmt.Sprintf("https://ondemand.%s.saucelabs.com:443/wd/hub", r)
}

// APIBase returns the root of the REST API for the region.
func APIBase(r Region) string {
	if r == Legacy {
		return "https://saucelabs.com"
	}
	if r == "" {
		r = DefaultRegion
	}
	return fmt.Sprintf("https://api.%s.saucelabs.com", r)
}
