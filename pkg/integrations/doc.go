// Package integrations provides the low-level HTTP client for the GitHub API.
//
// # Overview
//
// [Client] issues single requests and turns every answer into either a
// [Response] (status 200) or a structured error whose code names the failure
// kind (see [errors.FromStatus]). The [github] subpackage builds pagination,
// statistics, and entity resolution on top of it.
//
// # Client Pattern
//
//	client := integrations.NewClient(10*time.Second, integrations.APIHeaders(token))
//	resp, err := client.Call(ctx, http.MethodGet, "https://api.github.com/users/octocat")
//	if errors.Is(err, errors.ErrCodeNotFound) {
//	    // no such user
//	}
//
// The Authorization header is only attached when a token is configured.
//
// # Pagination metadata
//
// [ParseLink] reads the relation-tagged URLs of a Link header. A "next"
// relation drives list traversal; a "last" relation on a per_page=1 request
// gives a total count without listing.
//
// # Downloads
//
// [Client.Download] fetches avatar bytes without API headers and retries
// server errors with exponential backoff.
//
// [errors.FromStatus]: github.com/ghfetch/ghfetch/pkg/errors.FromStatus
// [github]: github.com/ghfetch/ghfetch/pkg/integrations/github
package integrations
