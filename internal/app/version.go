package app

const ServiceName = "crew-service"

// Set via -ldflags during build:
//
//	go build -ldflags="-X 'crew-service/internal/app.Version=1.0.0'"
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)
