// Package config loads mindchord's TOML configuration.
//
// The file is optional. Every value has a default and a file only needs
// the keys it changes:
//
//	[gesture]
//	min_distance = 2.0
//	scroll_threshold = 3.0
//
//	[hint]
//	promotion_delay = "800ms"
//	downgrade_delay = "10ms"
//	color = "#7aa2f7"
//	cancel_label = "✗ Cancel gesture"
//	training_mode = true
//
//	[recent]
//	enabled = true
//	max = 20
//
//	[storage]
//	dir = "~/.local/share/mindchord"
//
//	[plugins]
//	paths = ["~/.config/mindchord/commands.lua"]
//
//	[log]
//	level = "info"
//	file = ""
//
// A Watcher reloads the file when it changes and hands the new Config to
// subscribers. Reload only affects runtime settings. Command indices are
// built once at startup.
package config
