package version

var (
	AppName    = "WaBot"
	AppVersion = "dev" // overridden via -ldflags at release build
)
