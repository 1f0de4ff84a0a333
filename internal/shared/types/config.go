package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	APIURL     string   `json:"api_url" yaml:"api_url" toml:"api_url"`
	StateFile  string   `json:"state_file" yaml:"state_file" toml:"state_file"`
	Region     string   `json:"region" yaml:"region" toml:"region"`
	Account    string   `json:"account" yaml:"account" toml:"account"`
	LogLevel   string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	ReportType []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir        string   `json:"dir" yaml:"dir" toml:"dir"`
}

// DefaultRegion is used by every view when no region is chosen.
const DefaultRegion = "us-east-1"

// Regions lists the regions offered by the cost filters.
var Regions = []string{
	"us-east-1",
	"us-west-1",
	"us-west-2",
	"eu-central-1",
	"eu-west-1",
	"ap-south-1",
	"ap-northeast-1",
}

// IsKnownRegion reports whether region is one of Regions.
func IsKnownRegion(region string) bool {
	for _, r := range Regions {
		if r == region {
			return true
		}
	}
	return false
}
