package tools

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/mark3labs/mcp-go/mcp"
)

// Kind is the JSON type of a tool parameter.
type Kind string

const (
	KindString  Kind = "string"
	KindBoolean Kind = "boolean"
)

// Param describes one tool argument.
type Param struct {
	Name        string
	Kind        Kind
	Description string
	Required    bool
	Enum        []string
	Default     interface{}
	// Query forwards the value as a query parameter when present.
	Query bool
}

// Endpoint is an upstream path plus query string.
type Endpoint struct {
	Path  string
	Query url.Values
}

// String renders the endpoint as a request path relative to the base URL.
func (e Endpoint) String() string {
	if len(e.Query) == 0 {
		return e.Path
	}
	return e.Path + "?" + e.Query.Encode()
}

// Tool is one entry of the dispatch table.
type Tool struct {
	Name        string
	Description string
	Params      []Param
	// AnyOf lists alternative identifying fields; at least one must be present.
	AnyOf []string
	// Endpoint builds the upstream path from validated arguments. Query
	// parameters declared on Params are added by the dispatcher.
	Endpoint func(Args) Endpoint
	// Reshape, when set, rewrites the upstream response before it is indented.
	Reshape func(json.RawMessage) (json.RawMessage, error)
}

const cursorDescription = "Cursor for pagination (optional)"

func cursorParam() Param {
	return Param{Name: "cursor", Kind: KindString, Description: cursorDescription, Query: true}
}

func pathf(format string, args Args, names ...string) Endpoint {
	segments := make([]interface{}, len(names))
	for i, n := range names {
		segments[i] = url.PathEscape(args.String(n))
	}
	return Endpoint{Path: fmt.Sprintf(format, segments...)}
}

// Catalog returns the ordered tool table.
func Catalog() []Tool {
	return []Tool{
		{
			Name:        "search_tweets",
			Description: "Search for tweets using Twitter's advanced search operators",
			Params: []Param{
				{Name: "query", Kind: KindString, Required: true, Query: true,
					Description: "Search query with Twitter operators (e.g., 'from:elonmusk', '#AI', 'machine learning since:2024-01-01')"},
				{Name: "type", Kind: KindString, Enum: []string{"Latest", "Top"}, Default: "Latest", Query: true,
					Description: "Search type - Latest for recent tweets or Top for popular tweets"},
				cursorParam(),
			},
			Endpoint: func(Args) Endpoint { return Endpoint{Path: "/twitter/search"} },
			Reshape:  projectTweetUsers,
		},
		{
			Name:        "get_user_profile",
			Description: "Get detailed information about a Twitter user",
			Params: []Param{
				{Name: "username", Kind: KindString, Description: "Twitter username without @ symbol"},
				{Name: "user_id", Kind: KindString, Description: "Twitter user ID (numeric)"},
			},
			AnyOf: []string{"username", "user_id"},
			Endpoint: func(a Args) Endpoint {
				if a.Has("username") {
					return pathf("/twitter/user/%s", a, "username")
				}
				return pathf("/twitter/user/%s", a, "user_id")
			},
		},
		{
			Name:        "get_user_tweets",
			Description: "Get recent tweets from a user's timeline",
			Params: []Param{
				{Name: "user_id", Kind: KindString, Required: true, Description: "Twitter user ID (numeric)"},
				{Name: "include_replies", Kind: KindBoolean, Default: false, Description: "Include replies in the results"},
				cursorParam(),
			},
			Endpoint: func(a Args) Endpoint {
				if a.Bool("include_replies") {
					return pathf("/twitter/user/%s/tweets-and-replies", a, "user_id")
				}
				return pathf("/twitter/user/%s/tweets", a, "user_id")
			},
			Reshape: projectTweetUsers,
		},
		{
			Name:        "get_tweet",
			Description: "Get detailed information about a specific tweet",
			Params: []Param{
				{Name: "tweet_id", Kind: KindString, Required: true, Description: "Tweet ID"},
			},
			Endpoint: func(a Args) Endpoint { return pathf("/twitter/tweets/%s", a, "tweet_id") },
		},
		{
			Name:        "get_tweet_comments",
			Description: "Get comments/replies to a specific tweet",
			Params: []Param{
				{Name: "tweet_id", Kind: KindString, Required: true, Description: "Tweet ID"},
				cursorParam(),
			},
			Endpoint: func(a Args) Endpoint { return pathf("/twitter/tweets/%s/comments", a, "tweet_id") },
		},
		{
			Name:        "get_user_followers",
			Description: "Get a list of users who follow the specified user",
			Params: []Param{
				{Name: "user_id", Kind: KindString, Required: true, Query: true, Description: "Twitter user ID (numeric)"},
				cursorParam(),
			},
			Endpoint: func(Args) Endpoint { return Endpoint{Path: "/twitter/followers/list"} },
		},
		{
			Name:        "get_user_following",
			Description: "Get a list of users that the specified user follows",
			Params: []Param{
				{Name: "user_id", Kind: KindString, Required: true, Query: true, Description: "Twitter user ID (numeric)"},
				cursorParam(),
			},
			Endpoint: func(Args) Endpoint { return Endpoint{Path: "/twitter/friends/list"} },
		},
		{
			Name:        "verify_user_following",
			Description: "Check if one user is following another user",
			Params: []Param{
				{Name: "source_user_id", Kind: KindString, Required: true, Description: "ID of the follower user"},
				{Name: "target_user_id", Kind: KindString, Required: true, Description: "ID of the user being followed"},
			},
			Endpoint: func(a Args) Endpoint {
				return pathf("/twitter/user/%s/following/%s", a, "source_user_id", "target_user_id")
			},
		},
		{
			Name:        "get_tweet_quotes",
			Description: "Get quote tweets for a specific tweet",
			Params: []Param{
				{Name: "tweet_id", Kind: KindString, Required: true, Description: "Tweet ID"},
				cursorParam(),
			},
			Endpoint: func(a Args) Endpoint { return pathf("/twitter/tweets/%s/quotes", a, "tweet_id") },
		},
		{
			Name:        "get_user_mentions",
			Description: "Get tweets mentioning a specific user",
			Params: []Param{
				{Name: "username", Kind: KindString, Required: true, Description: "Twitter username without @ symbol"},
				cursorParam(),
			},
			Endpoint: func(a Args) Endpoint { return pathf("/twitter/user/%s/mentions", a, "username") },
		},
		{
			Name:        "get_thread",
			Description: "Get all tweets in a conversation thread",
			Params: []Param{
				{Name: "thread_id", Kind: KindString, Required: true, Description: "Thread ID (usually the first tweet ID in the thread)"},
				cursorParam(),
			},
			Endpoint: func(a Args) Endpoint { return pathf("/twitter/thread/%s", a, "thread_id") },
		},
	}
}

// ValidateTool checks a single table entry.
func ValidateTool(t Tool) error {
	if t.Name == "" {
		return fmt.Errorf("tool has empty name")
	}
	if t.Endpoint == nil {
		return fmt.Errorf("tool %q has no endpoint builder", t.Name)
	}
	seen := make(map[string]bool, len(t.Params))
	for _, p := range t.Params {
		if p.Name == "" {
			return fmt.Errorf("tool %q has a parameter with empty name", t.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("tool %q declares parameter %q twice", t.Name, p.Name)
		}
		seen[p.Name] = true
		if p.Kind != KindString && p.Kind != KindBoolean {
			return fmt.Errorf("tool %q parameter %q has unsupported kind %q", t.Name, p.Name, p.Kind)
		}
	}
	for _, name := range t.AnyOf {
		if !seen[name] {
			return fmt.Errorf("tool %q lists undeclared alternative %q", t.Name, name)
		}
	}
	return nil
}

// Registry is the immutable, ordered set of tools served by the process.
type Registry struct {
	tools []Tool
	index map[string]int
}

// NewRegistry validates tools and builds a registry preserving their order.
func NewRegistry(tools []Tool) (*Registry, error) {
	r := &Registry{
		tools: make([]Tool, 0, len(tools)),
		index: make(map[string]int, len(tools)),
	}
	for _, t := range tools {
		if err := ValidateTool(t); err != nil {
			return nil, err
		}
		if _, dup := r.index[t.Name]; dup {
			return nil, fmt.Errorf("duplicate tool %q", t.Name)
		}
		r.index[t.Name] = len(r.tools)
		r.tools = append(r.tools, t)
	}
	return r, nil
}

// DefaultRegistry returns a registry over Catalog.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(Catalog())
	if err != nil {
		panic(fmt.Sprintf("tools: invalid catalog: %v", err))
	}
	return r
}

// List returns the tools in catalog order. The slice is a copy.
func (r *Registry) List() []Tool {
	out := make([]Tool, len(r.tools))
	copy(out, r.tools)
	return out
}

// Lookup resolves a tool by name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	i, ok := r.index[name]
	if !ok {
		return Tool{}, false
	}
	return r.tools[i], true
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.tools)
}

// BuildMCPTool converts a Tool into an mcp.Tool with the matching input schema.
func BuildMCPTool(t Tool) mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(t.Description),
		mcp.WithReadOnlyHintAnnotation(true),
	}
	for _, p := range t.Params {
		opts = append(opts, buildParamOption(p))
	}
	return mcp.NewTool(t.Name, opts...)
}

// buildParamOption maps a Param to the appropriate mcp-go tool option.
func buildParamOption(p Param) mcp.ToolOption {
	var opts []mcp.PropertyOption
	if p.Description != "" {
		opts = append(opts, mcp.Description(p.Description))
	}
	if p.Required {
		opts = append(opts, mcp.Required())
	}

	switch p.Kind {
	case KindBoolean:
		if b, ok := p.Default.(bool); ok {
			opts = append(opts, mcp.DefaultBool(b))
		}
		return mcp.WithBoolean(p.Name, opts...)
	default:
		if len(p.Enum) > 0 {
			opts = append(opts, mcp.Enum(p.Enum...))
		}
		if s, ok := p.Default.(string); ok {
			opts = append(opts, mcp.DefaultString(s))
		}
		return mcp.WithString(p.Name, opts...)
	}
}
