// Package paperless implements the driven.PaperlessAPI port against the
// Paperless-ngx REST API.
//
// Requests carry the account token through an oauth2 static token source,
// are throttled by a token bucket, and map HTTP failures onto the domain
// error sentinels so the services never see status codes.
package paperless
