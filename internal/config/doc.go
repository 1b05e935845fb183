// Package config holds the engine settings: the undo limit, whether edits
// merge, the default maximum list size and logging.
//
// Settings are read from a TOML or YAML file, chosen by extension, on top
// of Default. Environment variables prefixed with LISTEDIT_ override the
// file:
//
//	LISTEDIT_HISTORY_MAX_ENTRIES   history.max_entries
//	LISTEDIT_HISTORY_MERGE_EDITS   history.merge_edits
//	LISTEDIT_LISTS_MAX_SIZE        lists.max_size
//	LISTEDIT_LOG_LEVEL             log.level
//	LISTEDIT_LOG_FORMAT            log.format
package config
