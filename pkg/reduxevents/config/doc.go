/*
Package config loads declarative event descriptions and runtime settings.

# Declarations

Events can be described in YAML or JSON and built against managers
supplied in code:

	cfg, err := config.FromFile("events.yaml")
	if err != nil {
	    log.Fatal(err)
	}
	decls, err := config.Declarations(cfg)
	if err != nil {
	    log.Fatal(err)
	}
	events, err := config.Build(decls, map[string]*reduxevents.Manager{
	    "fetchOrders": ordersManager,
	    "search":      searchManager,
	}, reduxevents.WithRegistry(registry))

A debounceDelay that is neither a duration string nor a number is
rejected with reduxevents.ErrInvalidDebounceDelay.

# Typed Access

Config wraps a decoded document. Accessors return a default when a key
is missing or holds another type:

	delay := cfg.Duration("debounceDelay", 300*time.Millisecond)
	names := cfg.StringSlice("names", nil)

Numbers given to Duration are milliseconds.

# Environment

LoadRuntime reads process settings:

	REDUXEVENTS_DEBOUNCE_DELAY  default debounce delay (300ms)
	REDUXEVENTS_SNAPSHOT_PATH   SQLite snapshot database (:memory:)
	REDUXEVENTS_LOG_LEVEL       debug, info, warn or error (info)
*/
package config
