package flowsmith

// Version is the library version, overridable at build time with
// -ldflags "-X github.com/flowsmith/flowsmith.Version=...".
var Version = "0.3.0"
