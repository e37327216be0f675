// Package explorer serves the generator over HTTP for interactive use.
//
// Routes:
//
//	POST /api/convert   {"json": "<ABI document>"} -> {"success", "code", "warnings"}
//	                    400 {"error"} when json is missing, 500 {"error"} when it
//	                    does not parse
//	GET  /api/live      websocket; every text message is converted and answered
//	                    with the same response object
//	GET  /metrics       Prometheus metrics
//
// Any other path answers 404; a known path with another method answers 405.
package explorer
