// ABOUTME: Package documentation for gateway configuration
// ABOUTME: Shows the YAML layout and the expansion/validation behavior

// Package config loads the sitechat-gateway YAML configuration.
//
// A minimal file:
//
//	server:
//	  http_addr: ":8080"
//	model:
//	  provider: gemini
//	  name: gemini-2.5-flash-lite
//	  api_key: ${GEMINI_API_KEY}
//	  timeout: 60s
//	context:
//	  site_context: |
//	    You are a helpful chatbot assistant for this website.
//	  history_limit: 50
//	logging:
//	  level: info
//	  format: json
//
// ${VAR} references expand from the environment before parsing.
// Durations are plain Go duration strings. Load applies defaults and
// validates the result; a gemini provider without an api_key is a
// configuration error, not a runtime surprise.
package config
