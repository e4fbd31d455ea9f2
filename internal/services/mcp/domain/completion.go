package domain

import (
	"context"
	"slices"
	"strings"

	"github.com/louisbranch/riftscout/internal/services/riot/ddragon"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const languageArgument = "language"

// CompletionHandler completes the {language} argument of the champion table
// template. Loaded languages come first. Any other reference completes to
// nothing.
func CompletionHandler(catalog ChampionCatalog) func(context.Context, *mcp.CompleteRequest) (*mcp.CompleteResult, error) {
	return func(_ context.Context, req *mcp.CompleteRequest) (*mcp.CompleteResult, error) {
		result := &mcp.CompleteResult{Completion: mcp.CompletionResultDetails{Values: []string{}}}
		if req == nil || req.Params == nil || req.Params.Ref == nil {
			return result, nil
		}
		ref := req.Params.Ref
		if ref.Type != "ref/resource" || ref.URI != ChampionTableResourceTemplate().URITemplate {
			return result, nil
		}
		if req.Params.Argument.Name != languageArgument {
			return result, nil
		}
		result.Completion.Values = completeLanguage(catalog.Cached(), req.Params.Argument.Value)
		result.Completion.Total = len(result.Completion.Values)
		return result, nil
	}
}

func completeLanguage(cached []string, prefix string) []string {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	candidates := slices.Concat(cached, ddragon.Languages)
	values := make([]string, 0, len(candidates))
	for _, lang := range candidates {
		if !strings.HasPrefix(strings.ToLower(lang), prefix) || slices.Contains(values, lang) {
			continue
		}
		values = append(values, lang)
	}
	return values
}
