// Package github resolves GitHub users, organizations, and repositories.
//
// # Overview
//
// [Client.Resolve] classifies a target ("octocat" or "octocat/Hello-World"),
// fetches it from the REST API (https://api.github.com) and normalizes the
// answer into an [Entity]: a [*User], [*Organization], or [*Repository].
// Empty strings in the answer become nil optional fields.
//
//	client := github.NewClient(token, 10*time.Second, github.WithLogger(logger))
//	entity, err := client.Resolve(ctx, "octocat/Hello-World")
//	if err != nil {
//	    return err
//	}
//	repo := entity.(*github.Repository)
//	fmt.Println(*repo.Commits, repo.Languages)
//
// # Statistics
//
// Counts are derived from pagination headers rather than full listings:
// [Client.CountViaPagination] requests one item per page and reads the
// number of the rel="last" page. [ListPaginated] walks rel="next" links for
// the cases that need every item, such as expanding "owner/*".
//
// [Client.LanguagePercentages] keeps the server's language order and folds
// everything past the third language into "Other" once there are more than
// four.
//
// # Conflicts
//
// GitHub answers 409 while it computes some resources. Lookups retry those
// with a fixed delay, five times by default (see [WithRetryPolicy]); other
// errors are returned as-is.
//
// # Authentication
//
// A personal access token is optional. Without one the API allows 60
// requests per hour, with one it allows 5000.
package github
