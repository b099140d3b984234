package outbound

import (
	"context"
	"time"

	"github.com/cookingwith/core/internal/domain/importing"
	"github.com/google/uuid"
)

// PageExtractor is the web-page recipe extractor boundary. It may fail
// on unreachable or unparsable pages; the parser decides how much of a
// partial extraction is salvageable.
type PageExtractor interface {
	Extract(ctx context.Context, url string) (*importing.ParsedRecipe, error)
}

// TextExtractor is the image OCR boundary. Failure on an unreadable
// image is a hard error with no fallback.
type TextExtractor interface {
	ExtractText(ctx context.Context, imageRef string) (string, error)
}

// TranslationProvider is the hosted translation service boundary.
// TranslateBatch is order-preserving and returns one result per input;
// the two operations can be unavailable independently of each other.
type TranslationProvider interface {
	TranslateBatch(ctx context.Context, texts []string, targetLanguage, sourceLanguage string) ([]string, error)
	TranslateOne(ctx context.Context, text, targetLanguage, sourceLanguage string) (string, error)
	Name() string
}

// JobDispatcher hands a translation job to an independent executor
// without waiting for or being coupled to its completion
type JobDispatcher interface {
	Dispatch(ctx context.Context, jobID uuid.UUID) error
}

// TranslationMetrics records translation pipeline observations. The
// processor emits them regardless of whether the queue worker or the
// operator endpoint drove the job.
type TranslationMetrics interface {
	RecordTranslationJob(contentType, status string, fields int, elapsed time.Duration)
	RecordBatchFallback()
}
