package cliconfig

import "slices"

// MergeConfig merges source config into target, updating sources tracking.
// Only non-zero values from source are applied.
func MergeConfig(target, source *CLIConfig, sourceType string) {
	if source == nil {
		return
	}
	if target.Sources == nil {
		target.Sources = make(map[string]string)
	}

	mergeInt := func(key string, dst *int, v int) {
		if v != 0 {
			*dst = v
			target.Sources[key] = sourceType
		}
	}
	mergeString := func(key string, dst *string, v string) {
		if v != "" {
			*dst = v
			target.Sources[key] = sourceType
		}
	}
	mergeList := func(key string, dst *[]string, v []string) {
		if len(v) > 0 {
			*dst = slices.Clone(v)
			target.Sources[key] = sourceType
		}
	}

	mergeInt("port", &target.Port, source.Port)
	mergeString("host", &target.Host, source.Host)
	mergeInt("readTimeout", &target.ReadTimeout, source.ReadTimeout)
	mergeInt("writeTimeout", &target.WriteTimeout, source.WriteTimeout)
	mergeInt("maxLogEntries", &target.MaxLogEntries, source.MaxLogEntries)
	mergeList("corsOrigins", &target.CORSOrigins, source.CORSOrigins)
	mergeString("passwordHasher", &target.PasswordHasher, source.PasswordHasher)
	mergeString("tokenCodec", &target.TokenCodec, source.TokenCodec)
	mergeString("store", &target.Store, source.Store)
	mergeString("storeDsn", &target.StoreDSN, source.StoreDSN)
	mergeList("load", &target.Load, source.Load)
	mergeString("serverUrl", &target.ServerURL, source.ServerURL)
	mergeString("logLevel", &target.LogLevel, source.LogLevel)
	mergeString("logFormat", &target.LogFormat, source.LogFormat)

	if boolIsSet(source, "json") {
		target.JSON = source.JSON
		target.Sources["json"] = sourceType
	}
}

// boolIsSet reports whether a boolean field identified by its YAML key was
// explicitly set in the source config. Without SetFields (programmatic
// configs) only true counts as set.
func boolIsSet(cfg *CLIConfig, yamlKey string) bool {
	if cfg.SetFields != nil {
		return cfg.SetFields[yamlKey]
	}
	switch yamlKey {
	case "json":
		return cfg.JSON
	}
	return false
}
