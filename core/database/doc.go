// Package database handles the progress database connection.
//
// It wraps GORM to configure either a local sqlite file (the default) or a
// MySQL server. The connection is optional: when it fails, the application
// keeps running with in-memory detection state only and progress simply is
// not persisted across restarts.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logg.Warn("Optional database connection failed", zap.Error(err))
//	}
package database
