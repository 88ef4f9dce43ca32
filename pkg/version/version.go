package version

// Version specifies the current version of mailwatch
// This value is injected in at compile time (see the Makefile)
var Version string
