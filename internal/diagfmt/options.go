package diagfmt

// SnippetOpts configures error snippet rendering.
type SnippetOpts struct {
	Color bool
	Path  string // prefixed to the location when set
}

// TokenFormat selects the token dump layout.
type TokenFormat string

const (
	TokensPretty TokenFormat = "pretty"
	TokensJSON   TokenFormat = "json"
)
