package version

// Version is overwritten at build time with -ldflags.
var Version = "0.1.0"
