// Package login drives the OAuth2 authorization-code handshake: it decides,
// for each request, whether to show the provider selection page, redirect to
// a provider, or finish a callback with an error or a logged-in identity.
package login

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/BlackMission/sociallogin/internal/domain"
	"github.com/BlackMission/sociallogin/internal/metrics"
	"github.com/BlackMission/sociallogin/internal/observability/logger"
	"github.com/BlackMission/sociallogin/internal/redirect"
	"github.com/BlackMission/sociallogin/internal/render"
)

// Providers resolves provider configuration.
type Providers interface {
	Lookup(name string) (domain.ProviderConfig, error)
	All() []domain.ProviderConfig
}

// TokenExchanger builds authorize redirects and exchanges codes.
type TokenExchanger interface {
	AuthCodeURL(provider domain.ProviderConfig, redirectURI, state string) string
	Exchange(ctx context.Context, provider domain.ProviderConfig, code, redirectURI string) (domain.AccessCredential, error)
}

// ProfileFetcher retrieves the user's profile with a credential.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, cred domain.AccessCredential, provider domain.ProviderConfig) (*domain.Profile, error)
}

// StateSource issues state values for authorize redirects.
type StateSource interface {
	New() string
}

// Deps holds the flow's collaborators. Metrics may be nil.
type Deps struct {
	Providers Providers
	Exchanger TokenExchanger
	Identity  ProfileFetcher
	State     StateSource
	Metrics   *metrics.Metrics
}

// Flow is the login state machine. It holds no per-request state and is
// safe for concurrent use.
type Flow struct {
	providers Providers
	exchanger TokenExchanger
	identity  ProfileFetcher
	state     StateSource
	metrics   *metrics.Metrics
}

// New creates a Flow.
func New(d Deps) *Flow {
	return &Flow{
		providers: d.Providers,
		exchanger: d.Exchanger,
		identity:  d.Identity,
		state:     d.State,
		metrics:   d.Metrics,
	}
}

// Request is one hit on the login route.
type Request struct {
	// Provider is the route parameter; it may be empty.
	Provider string
	Query    url.Values
	// CallbackURL builds the absolute callback URL for a provider.
	CallbackURL func(provider string) string
}

// Index renders the provider selection page.
func (f *Flow) Index(ctx context.Context) Result {
	f.metrics.LoginOutcome("", metrics.OutcomeChooseProvider)
	return f.chooseProvider(AwaitingProviderChoice)
}

// Login handles the login route. Provider error values always win; an
// unknown provider ends on the error page; a request without a code starts
// the handshake; a request with a code completes it.
func (f *Flow) Login(ctx context.Context, req Request) Result {
	log := logger.From(ctx).With(logger.Component("login"), logger.Provider(req.Provider))

	provider, lookupErr := f.providers.Lookup(req.Provider)

	if msgs := req.Query["error"]; len(msgs) > 0 {
		// Unknown names never become metric labels.
		known := domain.ProviderConfig{Name: metrics.UnknownProvider}
		if lookupErr == nil {
			known = provider
		}
		return f.complete(ctx, known, domain.CallbackError{Messages: msgs})
	}

	if lookupErr != nil {
		log.Warn("login requested for unknown provider",
			logger.Outcome(metrics.OutcomeUnknown), logger.Err(lookupErr))
		f.metrics.LoginOutcome(metrics.UnknownProvider, metrics.OutcomeUnknown)
		return f.callbackError([]string{fmt.Sprintf("unknown login provider %q", req.Provider)})
	}

	redirectURI := req.CallbackURL(provider.Name)

	code := req.Query.Get("code")
	if code == "" {
		location := f.exchanger.AuthCodeURL(provider, redirectURI, f.state.New())
		log.Debug("redirecting to provider",
			logger.Outcome(metrics.OutcomeRedirected), logger.String("redirect_uri", redirectURI))
		f.metrics.LoginOutcome(provider.Name, metrics.OutcomeRedirected)
		return Result{State: RedirectedToProvider, Location: location}
	}

	outcome := f.exchange(ctx, provider, code, redirectURI)
	return f.complete(ctx, provider, outcome)
}

// exchange turns a callback carrying a code into a Granted outcome. The
// credential is nil when the exchange failed.
func (f *Flow) exchange(ctx context.Context, provider domain.ProviderConfig, code, redirectURI string) domain.CallbackOutcome {
	start := time.Now()
	cred, err := f.exchanger.Exchange(ctx, provider, code, redirectURI)
	f.metrics.ObserveProviderCall(provider.Name, "token", time.Since(start), err)
	if err != nil {
		logger.From(ctx).Warn("token exchange failed",
			logger.Component("login"), logger.Provider(provider.Name), logger.Err(err))
		return domain.Granted{}
	}
	return domain.Granted{Credential: cred}
}

// complete finishes a callback: errors go to the error page, a missing
// credential or failed profile fetch goes back to provider selection.
func (f *Flow) complete(ctx context.Context, provider domain.ProviderConfig, outcome domain.CallbackOutcome) Result {
	log := logger.From(ctx).With(logger.Component("login"), logger.Provider(provider.Name))

	switch o := outcome.(type) {
	case domain.CallbackError:
		log.Info("provider signalled an error",
			logger.Outcome(metrics.OutcomeCallbackError), logger.Strings("errors", o.Messages))
		f.metrics.LoginOutcome(provider.Name, metrics.OutcomeCallbackError)
		return f.callbackError(o.Messages)

	case domain.Granted:
		if _, ok := domain.BearerValue(o.Credential); !ok {
			log.Debug("no usable credential", logger.Outcome(metrics.OutcomeFailed))
			f.metrics.LoginOutcome(provider.Name, metrics.OutcomeFailed)
			return f.chooseProvider(LoginFailed)
		}

		start := time.Now()
		profile, err := f.identity.FetchProfile(ctx, o.Credential, provider)
		f.metrics.ObserveProviderCall(provider.Name, "profile", time.Since(start), err)
		if err != nil || profile == nil || profile.Login == "" {
			if err == nil {
				err = domain.ErrProfileFetch
			}
			log.Warn("profile fetch failed", logger.Outcome(metrics.OutcomeFailed), logger.Err(err))
			f.metrics.LoginOutcome(provider.Name, metrics.OutcomeFailed)
			return f.chooseProvider(LoginFailed)
		}

		log.Info("login succeeded", logger.Outcome(metrics.OutcomeSucceeded), logger.Login(profile.Login))
		f.metrics.LoginOutcome(provider.Name, metrics.OutcomeSucceeded)
		return Result{State: LoginSucceeded, Login: profile.Login}
	}

	log.Error("unexpected callback outcome", logger.Err(fmt.Errorf("outcome type %T", outcome)))
	f.metrics.LoginOutcome(provider.Name, metrics.OutcomeFailed)
	return f.chooseProvider(LoginFailed)
}

func (f *Flow) callbackError(msgs []string) Result {
	return Result{State: CallbackError, Messages: append([]string(nil), msgs...)}
}

func (f *Flow) chooseProvider(s State) Result {
	all := f.providers.All()
	links := make([]render.ProviderLink, 0, len(all))
	for _, p := range all {
		links = append(links, render.ProviderLink{
			Label: p.Label(),
			Href:  redirect.LoginPath(p.Name),
		})
	}
	return Result{State: s, Providers: links}
}
