package version

const (
	AppName    = "MochaBot"
	AppVersion = "2.0.0"
)
