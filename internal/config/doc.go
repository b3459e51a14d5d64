// Package config loads keyline's settings.
//
// Settings are layered, lowest priority first:
//
//  1. Built-in defaults
//  2. The TOML config file ($XDG_CONFIG_HOME/keyline/config.toml or --config)
//  3. KEYLINE_* environment variables
//
// Example config file:
//
//	[logging]
//	level = "debug"
//	file = "/tmp/keyline.log"
//
//	[editor]
//	tab_width = 4
//	expand_tabs = true
//	init_script = "~/.config/keyline/init.lua"
//	remember_positions = true
//
//	[ui]
//	status_line = true
//
// The watcher subpackage reports changes to the file so the editor can
// reload it while running.
package config
