// Package config loads and merges xfail configuration.
//
// Settings come from three layers, later layers winning:
//
//  1. built-in defaults
//  2. a .xfail.yaml file, searched in the working directory and then in
//     <UserConfigDir>/xfail/
//  3. environment variables (XFAIL_RUNNER, XFAIL_NO_COLOR, NO_COLOR,
//     XFAIL_DEBUG) and explicit command-line flags
//
// A missing or malformed file degrades to defaults with a warning; it is
// never a failure.
package config
