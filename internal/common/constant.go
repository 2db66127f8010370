package common

// AccessTokenHeaderName is the HTTP header used to carry the access token
// on authenticated requests.
const AccessTokenHeaderName = "Authorization"

// DefaultRedirectTarget is where the client "navigates" after a successful
// login when the caller supplies no redirect of its own.
const DefaultRedirectTarget = "/dashboard"
