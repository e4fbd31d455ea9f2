package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/riftscout/internal/platform/errors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	championResourcePrefix = "riot://champions"
	championIndexURI       = championResourcePrefix
)

// ChampionTableEntry is one champion in a table resource.
type ChampionTableEntry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ChampionTablePayload is the champion table resource body.
type ChampionTablePayload struct {
	Language  string               `json:"language"`
	Version   string               `json:"version"`
	Champions []ChampionTableEntry `json:"champions"`
}

// ChampionIndexPayload lists the languages already loaded.
type ChampionIndexPayload struct {
	DefaultLanguage string   `json:"default_language"`
	Cached          []string `json:"cached"`
}

// ChampionTableResourceTemplate defines the per-language champion table resource.
func ChampionTableResourceTemplate() *mcp.ResourceTemplate {
	return &mcp.ResourceTemplate{
		Name:        "champion_table",
		Title:       "Champion Names",
		Description: "Champion id to localized name table. URI format: riot://champions/{language}",
		MIMEType:    "application/json",
		URITemplate: championResourcePrefix + "/{language}",
	}
}

// ChampionIndexResource defines the resource listing cached champion tables.
func ChampionIndexResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "champion_index",
		Title:       "Cached Champion Tables",
		Description: "Languages whose champion tables are loaded, plus the default language",
		MIMEType:    "application/json",
		URI:         championIndexURI,
	}
}

// ChampionTableResourceHandler reads a champion table, loading it on first use.
func ChampionTableResourceHandler(catalog ChampionCatalog) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if catalog == nil {
			return nil, fmt.Errorf("champion catalog is not configured")
		}
		if req == nil || req.Params == nil || req.Params.URI == "" {
			return nil, fmt.Errorf("language is required; use URI format riot://champions/{language}")
		}
		uri := req.Params.URI

		language, err := parseLanguageFromURI(uri)
		if err != nil {
			return nil, err
		}

		runCtx, cancel := context.WithTimeout(ctx, toolCallTimeout)
		defer cancel()

		table, err := catalog.Table(runCtx, language)
		if err != nil {
			if apperrors.HasCode(err, apperrors.CodeUnsupportedLanguage) {
				return nil, mcp.ResourceNotFoundError(uri)
			}
			return nil, fmt.Errorf("load champion table: %w", err)
		}

		payload := ChampionTablePayload{
			Language:  table.Language,
			Version:   table.Version,
			Champions: make([]ChampionTableEntry, 0, table.Len()),
		}
		for _, champion := range table.Champions {
			payload.Champions = append(payload.Champions, ChampionTableEntry{ID: champion.ID, Name: champion.Name})
		}
		return jsonResource(uri, payload)
	}
}

// ChampionIndexResourceHandler lists the languages loaded so far.
func ChampionIndexResourceHandler(catalog ChampionCatalog) mcp.ResourceHandler {
	return func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if catalog == nil {
			return nil, fmt.Errorf("champion catalog is not configured")
		}
		uri := championIndexURI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}
		return jsonResource(uri, ChampionIndexPayload{
			DefaultLanguage: catalog.DefaultLanguage(),
			Cached:          nonNil(catalog.Cached()),
		})
	}
}

// parseLanguageFromURI extracts {language} from riot://champions/{language}.
func parseLanguageFromURI(uri string) (string, error) {
	rest, ok := strings.CutPrefix(uri, championResourcePrefix+"/")
	if !ok {
		return "", fmt.Errorf("URI must match riot://champions/{language}: %s", uri)
	}
	language := strings.TrimSpace(rest)
	if language == "" || strings.Contains(language, "/") {
		return "", fmt.Errorf("URI must match riot://champions/{language}: %s", uri)
	}
	return language, nil
}

func jsonResource(uri string, payload any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}, nil
}
