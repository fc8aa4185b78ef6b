// Package config provides configuration loading, merging, and validation
// facilities for the possync application.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win; later sources only fill fields still unset):
//  1. Environment variables
//  2. JSON config file (path taken from the CONFIG variable or the
//     --config CLI flag)
//
// The main entry point is [GetConfig].
package config
