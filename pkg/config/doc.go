// Package config loads the server configuration file and turns it into
// actions and engine options.
//
// A configuration file is YAML (.yaml, .yml) or JSON (anything else):
//
//	port: 8080
//	threads: 5
//	readTimeout: 30s
//	logging:
//	  level: info
//	  file: /var/log/actions-server.log
//	include:
//	  - routes/**/*.yaml
//	actions:
//	  - type: json
//	    path: /status
//	    payload: {status: ok}
//	  - type: redirect
//	    from: /
//	    to: /static/index.html
//	  - type: static
//	    prefix: /static
//	    dir: ./public
//	  - type: upload
//	    path: /upload
//	    dir: ./uploads
//	    redirect: /static/index.html
//
// Actions keep the order in which they appear; actions from included files
// follow the inline ones, file by file in sorted order. Relative directories
// are resolved against the file that declares them.
//
// Loading a file:
//
//	cfg, err := config.LoadFromFile("actions.yaml")
//	if err != nil {
//	    return err
//	}
//	actions, err := cfg.BuildActions()
package config
