package types

// CLIArgs represents the global command-line arguments.
type CLIArgs struct {
	ConfigFile string
	APIURL     string
	StateFile  string
	Account    string
	Region     string
	LogLevel   string
	Ephemeral  bool
}

// ViewArgs carries the dependency set of a view command.
type ViewArgs struct {
	Region     string
	Start      string
	End        string
	TagFilters []string
	ReportName string
	ReportType []string
	Dir        string
}
