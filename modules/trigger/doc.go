// Package trigger exposes the HTTP endpoint that a scheduler calls to
// process the next background job.
//
// Each authenticated request runs the Runner once and answers with the
// outcome:
//
//	200 {"message":"No pending jobs"}
//	200 {"job_id":"...","job_type":"...","success":true,"error":null}
//	401 {"error":"Unauthorized" | "Invalid cron secret" | "Invalid bearer token"}
//	500 {"error":"Server misconfigured" | "Failed to fetch job" | "Internal server error"}
//
// Callers authenticate with X-Cron-Secret or an Authorization bearer token.
// Preflight OPTIONS requests get CORS headers and an empty 200.
package trigger
