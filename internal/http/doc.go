// Package http provides HTTP handlers and middleware for the placement API.
//
// The router exposes the following endpoints:
//   - POST /login: issues a session token. Body: {"email","password"}. Response:
//     {"token","expires_at","principal":{"operator_id","display_name","is_admin"}}
//     with token also surfaced via the `X-Session-Token` header and a
//     `session_token` cookie.
//   - DELETE /sessions/current: revokes the current session token extracted from
//     the Authorization header or session cookie. Returns 204 No Content and
//     clears the cookie.
//   - GET /rooms, POST /rooms, PUT /rooms/{id}, DELETE /rooms/{id}: room catalog
//     endpoints exchanging the `roomDTO` payload defined in room_handler.go.
//     Listing accepts a `campus_group_id` query filter. Mutations require admin
//     privileges.
//   - GET /participants, POST /participants, POST /participants/import,
//     PUT /participants/{id}, DELETE /participants/{id}: roster endpoints
//     exchanging the `participantDTO` payload defined in participant_handler.go.
//     Listing accepts a `group_id` query filter. The import endpoint accepts
//     {"rows":[...]} and persists all rows atomically.
//   - POST /generations: runs a placement generation and persists the resulting
//     schedule. The response carries the summary, the computed batch and
//     assignment records, per-batch persistence outcomes and the identifiers of
//     participants left unscheduled.
//   - GET /schedules, GET /schedules/{id}, GET /schedules/{id}/batches,
//     GET /schedules/{id}/assignments: read-only views over persisted
//     generation runs.
//   - GET /schedules/{id}/export: streams the schedule as a CSV attachment.
//   - POST /schedules/{id}/notifications: emails every assigned participant
//     their room and seat. Requires admin privileges.
//   - GET /operators, POST /operators, PUT /operators/{id},
//     DELETE /operators/{id}: administrator controlled account management
//     endpoints exchanging the `operatorDTO` payload defined in
//     operator_handler.go.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
