/*
Package config loads foldermove mapping files.

	            +-------------+
	            |   Config    |
	            | (Mappings)  |
	            +------+------+
	                   |
	   +---------+-----+-----+---------+
	   |         |           |         |
	+--+---+  +--+--+    +---+--+  +---+--+
	| YAML |  | HCL |    | JSON |  | TOML |
	+------+  +-----+    +------+  +------+

🎯 Purpose:
- Reads a list of source/destination folder pairs from disk
- Picks a parser by file extension through a small registry
- Validates and normalizes the result before the engine sees it

🔄 Flow:
1. Load reads the file
2. GetParser selects the format (unknown extensions try YAML, then HCL)
3. Validate checks the operation, mappings and ignore patterns
4. Relative paths are resolved against the folder holding the file
5. Request converts the config into a transfer.Request

🔍 Example (YAML):

	operation: move
	ignore_patterns:
	  - "*.tmp"
	mappings:
	  - source: ./inbox
	    destination: /srv/archive/inbox

🔍 Example (HCL):

	operation = "copy"

	mapping {
		source      = "photos"
		destination = "/backup/photos"
	}
*/
package config
