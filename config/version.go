package config

// VersionString is set by the build system via ldflags.
var VersionString = "dev"
