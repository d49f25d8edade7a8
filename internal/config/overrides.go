package config

// RuntimeOverrides holds configuration values that can be overridden at runtime
// via CLI flags or other means
type RuntimeOverrides struct {
	LogLevel *string
	LogFile  *string
	DBPath   *string
}

func (o *RuntimeOverrides) apply(cfg *ConfigSchema) {
	if o == nil {
		return
	}
	if o.LogLevel != nil {
		cfg.Log.LogLevel = *o.LogLevel
		cfg.sources["log.level"] = append(cfg.sources["log.level"], configSource{value: *o.LogLevel, source: "--log-level flag"})
	}
	if o.LogFile != nil {
		cfg.Log.LogFile = *o.LogFile
		cfg.sources["log.file"] = append(cfg.sources["log.file"], configSource{value: *o.LogFile, source: "--log-file flag"})
	}
	if o.DBPath != nil {
		cfg.History.DBPath = *o.DBPath
		cfg.sources["history.dbpath"] = append(cfg.sources["history.dbpath"], configSource{value: *o.DBPath, source: "--db-path flag"})
	}
}
