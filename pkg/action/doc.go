// Package action defines the route matchers and handlers a server dispatches
// requests to.
//
// An Action is a pure predicate (Match) paired with a handler (Handle). A
// server holds an ordered slice of actions and hands each request to the
// first one whose predicate returns true; later actions matching the same
// request are never consulted, which allows a catch-all to be declared last.
//
// Built-in actions:
//
//   - JSONGet: GET on an exact path, payload encoded as JSON
//   - JSONPost: POST on an exact path, body decoded from JSON
//   - Redirect: any method on an exact path, 301 to a fixed location
//   - StaticResources: GET of a single file directly under a directory
//   - UploadThenRedirect: POST of a multipart upload, 301 to a computed location
//   - Func: adapter for application-defined actions
//
// Handlers report client-caused failures with a *ValidationError, which the
// dispatcher answers with 400. Any other error becomes a 500.
package action
