package domain

import (
	"context"
	"log"

	apperrors "github.com/louisbranch/riftscout/internal/platform/errors"
	"github.com/louisbranch/riftscout/internal/platform/errors/i18n"
	"github.com/louisbranch/riftscout/internal/platform/requestctx"
)

// message renders a user-facing message from the base catalog.
func message(key string, metadata map[string]string) string {
	return i18n.Format(key, metadata)
}

// placeholder turns a failure into a tool error whose text is the
// user-facing message for code. The cause is logged, not surfaced.
func placeholder(ctx context.Context, code apperrors.Code, metadata map[string]string, cause error) error {
	text := message(string(code), metadata)
	if cause != nil {
		log.Printf("%stool placeholder %s: %v", requestctx.LogPrefix(ctx), code, cause)
	}
	return apperrors.WithMetadata(code, text, metadata)
}

// languageError surfaces an unsupported language as a placeholder and passes
// other catalog failures through as CATALOG_UNAVAILABLE.
func languageError(ctx context.Context, language string, err error) error {
	if apperrors.HasCode(err, apperrors.CodeUnsupportedLanguage) {
		return placeholder(ctx, apperrors.CodeUnsupportedLanguage, map[string]string{"Language": language}, nil)
	}
	return placeholder(ctx, apperrors.CodeCatalogUnavailable, nil, err)
}
