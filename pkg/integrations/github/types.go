package github

import "strconv"

// Kind names the variant of an [Entity].
type Kind string

const (
	KindUser         Kind = "user"
	KindOrganization Kind = "organization"
	KindRepository   Kind = "repository"
)

// Entity is a resolved user, organization, or repository.
// The concrete types are [*User], [*Organization] and [*Repository].
type Entity interface {
	Kind() Kind
	Base() *Common
	entity()
}

// Common holds the fields every entity kind carries.
type Common struct {
	Name      *string // display name
	URL       string  // html_url on github.com
	CreatedAt string  // YYYY-MM-DD
	AvatarURL string
}

// Base returns the shared fields.
func (c *Common) Base() *Common { return c }

// User is a personal GitHub account.
type User struct {
	Common
	Login       string
	Bio         *string
	Location    *string
	Email       *string
	Company     *string
	Website     *string
	Followers   int
	Following   int
	PublicRepos int
	PublicGists int
}

// Organization is a GitHub organization account. It has no company field.
type Organization struct {
	Common
	Login       string
	Bio         *string
	Location    *string
	Email       *string
	Website     *string
	Followers   int
	Following   int
	PublicRepos int
	PublicGists int
}

// Repository is a GitHub repository with its derived statistics.
type Repository struct {
	Common
	Owner       string
	Description *string
	Homepage    *string
	Stars       int
	Watchers    int
	Forks       int
	Archived    bool
	License     *string
	ForkParent  *string // html_url of the parent when the repository is a fork
	Commits     *int
	Languages   Languages
}

func (*User) Kind() Kind         { return KindUser }
func (*Organization) Kind() Kind { return KindOrganization }
func (*Repository) Kind() Kind   { return KindRepository }

func (*User) entity()         {}
func (*Organization) entity() {}
func (*Repository) entity()   {}

// FullName returns "owner/name".
func (r *Repository) FullName() string {
	if r.Name == nil {
		return r.Owner
	}
	return r.Owner + "/" + *r.Name
}

// LanguageShare is one entry of a language breakdown.
// Percent is truncated (not rounded) to one decimal.
type LanguageShare struct {
	Name    string
	Percent float64
}

// String renders the percentage as "66.6%".
func (l LanguageShare) String() string {
	return strconv.FormatFloat(l.Percent, 'f', 1, 64) + "%"
}

// Languages is an ordered breakdown of at most four entries.
type Languages []LanguageShare

// OtherLanguage is the synthetic bucket that folds the tail of a long breakdown.
const OtherLanguage = "Other"

// optional maps an empty string to nil.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

type apiAccount struct {
	Login       string `json:"login"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	Location    string `json:"location"`
	Email       string `json:"email"`
	Company     string `json:"company"`
	Blog        string `json:"blog"`
	HTMLURL     string `json:"html_url"`
	AvatarURL   string `json:"avatar_url"`
	CreatedAt   string `json:"created_at"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	PublicRepos int    `json:"public_repos"`
	PublicGists int    `json:"public_gists"`
}

type apiRepo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Homepage    string `json:"homepage"`
	HTMLURL     string `json:"html_url"`
	CreatedAt   string `json:"created_at"`
	Stars       int    `json:"stargazers_count"`
	Watchers    int    `json:"watchers_count"`
	Forks       int    `json:"forks_count"`
	Archived    bool   `json:"archived"`
	Fork        bool   `json:"fork"`
	Size        int    `json:"size"`
	Owner       *struct {
		Login     string `json:"login"`
		AvatarURL string `json:"avatar_url"`
	} `json:"owner"`
	License *struct {
		Name string `json:"name"`
	} `json:"license"`
	Parent *struct {
		HTMLURL string `json:"html_url"`
	} `json:"parent"`
	LanguagesURL string `json:"languages_url"`
}

type apiRepoName struct {
	FullName string `json:"full_name"`
}
