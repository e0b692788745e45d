package resolver

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go-weather/internal/domain/entity"
	"go-weather/internal/domain/gateway/api"
)

// fakeProvider answers from a per-query table and records every call.
type fakeProvider struct {
	results map[string]api.LookupResult
	calls   []string
}

func (f *fakeProvider) LookupCurrentWeather(ctx context.Context, query string) api.LookupResult {
	f.calls = append(f.calls, query)
	if result, ok := f.results[query]; ok {
		return result
	}
	return api.LookupResult{Status: api.LookupNotFound, StatusCode: 404}
}

func found(name string) api.LookupResult {
	return api.LookupResult{
		Status:     api.LookupFound,
		StatusCode: 200,
		Payload: entity.WeatherPayload{
			ProviderName: name,
			Coordinates:  entity.Coordinates{Latitude: 39.9, Longitude: 116.4},
		},
	}
}

func TestCandidates(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"latin input", "London", []string{"London"}},
		{"latin input is trimmed", "  Paris \t", []string{"Paris"}},
		{"empty", "   ", nil},
		{"cjk not in table", "拉萨", []string{"拉萨", "拉萨,CN", "拉萨,中国", "拉萨,CHINA"}},
		{"cjk in table", "北京", []string{"北京", "北京,CN", "北京,中国", "北京,CHINA", "Beijing", "Beijing,CN"}},
		{"translation with apostrophe", "西安", []string{"西安", "西安,CN", "西安,中国", "西安,CHINA", "Xi'an", "Xi'an,CN"}},
		{"trailing punctuation skips table", "北京。", []string{"北京。", "北京。,CN", "北京。,中国", "北京。,CHINA"}},
		{"inner space skips table", "北 京", []string{"北 京", "北 京,CN", "北 京,中国", "北 京,CHINA"}},
		{"mixed script", "Beijing北京", []string{"Beijing北京", "Beijing北京,CN", "Beijing北京,中国", "Beijing北京,CHINA"}},
		{"japanese kana only is not cjk ideograph", "とうきょう", []string{"とうきょう"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Candidates(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Candidates(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCandidatesAreDeterministic(t *testing.T) {
	first := Candidates("重庆")
	for i := 0; i < 10; i++ {
		if got := Candidates("重庆"); !reflect.DeepEqual(got, first) {
			t.Fatalf("candidate order changed: %q vs %q", got, first)
		}
	}
}

func TestTranslate(t *testing.T) {
	if english, ok := Translate("深圳"); !ok || english != "Shenzhen" {
		t.Errorf("expected Shenzhen, got %q (%v)", english, ok)
	}
	if _, ok := Translate("Shenzhen"); ok {
		t.Error("english names are not table keys")
	}
}

func TestResolve_EmptyInputMakesNoCalls(t *testing.T) {
	provider := &fakeProvider{}
	r := NewResolver(provider)

	for _, input := range []string{"", "   ", "\t\n"} {
		_, err := r.Resolve(context.Background(), input)
		if !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Resolve(%q): expected EmptyInput, got %v", input, err)
		}
	}
	if len(provider.calls) != 0 {
		t.Errorf("expected zero provider calls, got %v", provider.calls)
	}
}

func TestResolve_NonCJKNotFoundAfterOneCall(t *testing.T) {
	provider := &fakeProvider{}
	r := NewResolver(provider)

	_, err := r.Resolve(context.Background(), "Atlantis")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if !reflect.DeepEqual(provider.calls, []string{"Atlantis"}) {
		t.Errorf("expected exactly one call, got %v", provider.calls)
	}

	var resErr *ResolutionError
	if !errors.As(err, &resErr) || resErr.Attempts != 1 {
		t.Errorf("expected 1 attempt recorded, got %+v", resErr)
	}
}

func TestResolve_StopsAtFirstFound(t *testing.T) {
	provider := &fakeProvider{results: map[string]api.LookupResult{
		"北京,CN":   found("Beijing"),
		"Beijing": found("Beijing"),
	}}
	r := NewResolver(provider)

	payload, err := r.Resolve(context.Background(), "北京")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(provider.calls, []string{"北京", "北京,CN"}) {
		t.Errorf("later candidates must not be issued, calls: %v", provider.calls)
	}
	if payload.MatchedQuery != "北京,CN" || payload.Attempts != 2 {
		t.Errorf("unexpected match info: %q after %d", payload.MatchedQuery, payload.Attempts)
	}
}

func TestResolve_TranslatedCandidateKeepsUserLabel(t *testing.T) {
	provider := &fakeProvider{results: map[string]api.LookupResult{
		"Beijing": found("Beijing"),
	}}
	r := NewResolver(provider)

	payload, err := r.Resolve(context.Background(), " 北京 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Label != "北京" {
		t.Errorf("expected label 北京, got %q", payload.Label)
	}
	if payload.ProviderName != "Beijing" {
		t.Errorf("expected provider name Beijing, got %q", payload.ProviderName)
	}
	if len(provider.calls) != 5 || provider.calls[4] != "Beijing" {
		t.Errorf("expected success on the 5th candidate, calls: %v", provider.calls)
	}
}

func TestResolve_ProviderErrorShortCircuits(t *testing.T) {
	provider := &fakeProvider{results: map[string]api.LookupResult{
		"北京":      {Status: api.LookupFailed, StatusCode: 401, Err: errors.New("http error: status 401")},
		"Beijing": found("Beijing"),
	}}
	r := NewResolver(provider)

	_, err := r.Resolve(context.Background(), "北京")
	if !errors.Is(err, ErrProviderError) {
		t.Fatalf("expected ProviderError, got %v", err)
	}

	var resErr *ResolutionError
	if !errors.As(err, &resErr) {
		t.Fatalf("expected *ResolutionError, got %T", err)
	}
	if resErr.StatusCode != 401 || !resErr.IsAuthFailure() {
		t.Errorf("expected auth failure 401, got %d", resErr.StatusCode)
	}
	if len(provider.calls) != 1 {
		t.Errorf("no further candidates may be issued, calls: %v", provider.calls)
	}
}

func TestResolve_ProviderErrorAfterNotFound(t *testing.T) {
	provider := &fakeProvider{results: map[string]api.LookupResult{
		"拉萨,中国": {Status: api.LookupFailed, StatusCode: 503},
	}}
	r := NewResolver(provider)

	_, err := r.Resolve(context.Background(), "拉萨")

	var resErr *ResolutionError
	if !errors.As(err, &resErr) || resErr.Kind != ProviderError {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if resErr.StatusCode != 503 || resErr.Query != "拉萨,中国" || resErr.Attempts != 3 {
		t.Errorf("unexpected error details: %+v", resErr)
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("provider errors must never read as NotFound")
	}
}

func TestResolve_CJKExhaustsAllCandidates(t *testing.T) {
	provider := &fakeProvider{}
	r := NewResolver(provider)

	_, err := r.Resolve(context.Background(), "北京")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if !reflect.DeepEqual(provider.calls, Candidates("北京")) {
		t.Errorf("expected every candidate in order, got %v", provider.calls)
	}
}

func TestResolve_CanceledContextStopsBeforeNextCandidate(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	provider := &cancelingProvider{cancel: cancel}
	r := NewResolver(provider)

	_, err := r.Resolve(ctx, "北京")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if !errors.Is(err, ErrProviderError) {
		t.Errorf("expected cancellation to surface as ProviderError, got %v", err)
	}
	if provider.calls != 1 {
		t.Errorf("expected 1 call before cancellation, got %d", provider.calls)
	}
}

type cancelingProvider struct {
	cancel context.CancelFunc
	calls  int
}

func (p *cancelingProvider) LookupCurrentWeather(ctx context.Context, query string) api.LookupResult {
	p.calls++
	p.cancel()
	return api.LookupResult{Status: api.LookupNotFound, StatusCode: 404}
}
