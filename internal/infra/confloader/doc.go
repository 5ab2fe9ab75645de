// Package confloader loads configuration with koanf and watches config
// files with fsnotify.
//
// Priority (highest to lowest):
//
//  1. Maps loaded with LoadMap (command-line flags)
//  2. Environment variables (CANIKIT_SECTION_KEY)
//  3. The YAML configuration file
//  4. Values already present in the target struct
package confloader
