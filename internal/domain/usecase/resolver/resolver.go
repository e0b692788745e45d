package resolver

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"go-weather/internal/domain/entity"
	"go-weather/internal/domain/gateway/api"
	"go-weather/pkg/log"
	"go-weather/pkg/msg"
)

// Provider is the single-lookup capability the resolver needs.
type Provider interface {
	LookupCurrentWeather(ctx context.Context, query string) api.LookupResult
}

// Resolver turns free-text city input into a weather payload. It keeps no state
// between calls and is safe for concurrent use.
type Resolver struct {
	provider Provider
}

func NewResolver(provider Provider) *Resolver {
	return &Resolver{provider: provider}
}

// Resolve tries each candidate query in order, one at a time.
// The first found result wins and is labelled with the trimmed user input.
// Not-found answers move on to the next candidate; any other failure stops
// immediately with a ProviderError. The error is always a *ResolutionError.
func (r *Resolver) Resolve(ctx context.Context, rawInput string) (entity.WeatherPayload, error) {
	city := strings.TrimSpace(rawInput)
	if city == "" {
		return entity.WeatherPayload{}, &ResolutionError{Kind: EmptyInput}
	}

	candidates := Candidates(city)
	log.Debug(msg.GetMessage("weather.resolve.start", city, len(candidates)),
		zap.Strings("candidates", candidates))

	for i, query := range candidates {
		if err := ctx.Err(); err != nil {
			return entity.WeatherPayload{}, &ResolutionError{Kind: ProviderError, Query: query, Attempts: i, Err: err}
		}

		result := r.provider.LookupCurrentWeather(ctx, query)
		attempts := i + 1

		switch result.Status {
		case api.LookupFound:
			payload := result.Payload
			payload.Label = city
			payload.MatchedQuery = query
			payload.Attempts = attempts
			log.Info(msg.GetMessage("weather.resolve.found", city, query, attempts))
			return payload, nil
		case api.LookupNotFound:
			log.Debug("Candidate query not found", zap.String("query", query), zap.Int("attempt", attempts))
			continue
		default:
			log.Warn(msg.GetMessage("weather.resolve.provider-error", result.StatusCode, city),
				zap.String("query", query), zap.Error(result.Err))
			return entity.WeatherPayload{}, &ResolutionError{
				Kind:       ProviderError,
				StatusCode: result.StatusCode,
				Query:      query,
				Attempts:   attempts,
				Err:        result.Err,
			}
		}
	}

	log.Info(msg.GetMessage("weather.resolve.not-found", city, len(candidates)))
	return entity.WeatherPayload{}, &ResolutionError{Kind: NotFound, Attempts: len(candidates)}
}
