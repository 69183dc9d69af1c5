// Package config loads board configuration files.
//
// A board file declares a target board, the tool version it was written
// for and its named build configurations. Files are TOML (.toml) or YAML
// (.yaml, .yml) and are layered with koanf:
//
//  1. embedded defaults (embedded/defaults.toml), applied to each config
//  2. the board file itself
//  3. STMDEPLOY_* environment variables, "__" separating key levels
//     (STMDEPLOY_CONFIGS__CM7__BUILD_CMD="make -j8")
//
// Commands are accepted as a single shell-like string or as an argument
// list. Template entries are accepted as [source, destination, mode] lists
// or as tables.
package config
