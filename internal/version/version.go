package version

// Version is set at build time with -ldflags "-X github.com/CameronXie/sap-api-layer/internal/version.Version=...".
var Version = "dev"
