// Package database handles database connections.
//
// It wraps GORM so that the rest of grain opens databases the same way: GORM logging
// silenced, pool settings per driver and a ping before the handle is returned.
//
// # Connect
//
// Connect opens the database configured under `database`, SQLite by default
// (a grain.db file next to the binary) or MySQL. It backs the pass history.
//
// # OpenReadOnly
//
// OpenReadOnly opens an existing SQLite file with mode=ro. The messages source uses it
// to read the local chat database without any chance of modifying it.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("History disabled", zap.Error(err))
//	}
package database
