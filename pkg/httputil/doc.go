// Package httputil provides retry policies for GitHub API and avatar requests.
//
// # Retry
//
// [Retry] re-runs an operation while it fails with a [RetryableError], up to
// the bound set by a [Policy]:
//
//	policy := httputil.DefaultConflictPolicy() // 5 retries, fixed 1s delay
//	err := httputil.Retry(ctx, policy, func() error {
//	    err := fetch()
//	    if errors.Is(err, errors.ErrCodeConflict) {
//	        return httputil.Retryable(err)
//	    }
//	    return err
//	})
//
// Callers decide what is transient by wrapping it; everything else returns
// immediately. The GitHub client treats 409 Conflict as transient, the avatar
// downloader treats 5xx and connection failures as transient.
//
// [RetryWithBackoff] is the exponential variant (3 attempts, 1s doubling)
// used for downloads.
//
// Waiting honors context cancellation, so a Ctrl-C during a retry delay ends
// the run immediately.
package httputil
