// Package bootstrap constructs the process-wide Firebase handles for the
// discipline tracker: the app connection context, the authentication client
// and the Firestore client, plus the document store built on top of them.
// Initialize is safe to call any number of times; the handles are created
// exactly once.
package bootstrap

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/MacMbizo/disciplineApp-sub001/internal/store"
	"github.com/MacMbizo/disciplineApp-sub001/internal/tracker"
)

// cacheProbeKey is written and removed once during Initialize to decide
// whether the document cache is usable
const cacheProbeKey = "bootstrap:probe"

// Bootstrap owns the remote backend handles. Construct one per process at
// startup and inject it into every collaborator that needs the handles; no
// package-level state is kept.
type Bootstrap struct {
	mu          sync.Mutex
	initialized atomic.Bool

	config  *tracker.FirebaseConfig
	cache   tracker.Cache
	logger  tracker.Logger
	metrics tracker.Metrics

	app        *firebase.App
	authClient *firebaseauth.Client
	dbClient   *firestore.Client
	docStore   *store.Store
	cacheReady bool

	// Handle constructors, replaceable in tests
	newApp       func(ctx context.Context, config *firebase.Config, opts ...option.ClientOption) (*firebase.App, error)
	newAuth      func(ctx context.Context, app *firebase.App) (*firebaseauth.Client, error)
	newFirestore func(ctx context.Context, app *firebase.App) (*firestore.Client, error)
}

// New creates a session bootstrap with the injected dependencies. Call
// LoadConfig and then Initialize before using any accessor.
func New(cache tracker.Cache, logger tracker.Logger, metrics tracker.Metrics) *Bootstrap {
	return &Bootstrap{
		cache:   cache,
		logger:  logger.With("component", "bootstrap"),
		metrics: metrics,

		newApp: firebase.NewApp,
		newAuth: func(ctx context.Context, app *firebase.App) (*firebaseauth.Client, error) {
			return app.Auth(ctx)
		},
		newFirestore: func(ctx context.Context, app *firebase.App) (*firestore.Client, error) {
			return app.Firestore(ctx)
		},
	}
}

// LoadConfig loads and validates the Firebase addressing parameters
func (b *Bootstrap) LoadConfig(loader tracker.ConfigLoader) error {
	config := &tracker.FirebaseConfig{
		APIKey:            loader.GetWithDefault("firebase.api_key", ""),
		AuthDomain:        loader.GetWithDefault("firebase.auth_domain", ""),
		ProjectID:         loader.GetWithDefault("firebase.project_id", ""),
		StorageBucket:     loader.GetWithDefault("firebase.storage_bucket", ""),
		MessagingSenderID: loader.GetWithDefault("firebase.messaging_sender_id", ""),
		AppID:             loader.GetWithDefault("firebase.app_id", ""),
		MeasurementID:     loader.GetWithDefault("firebase.measurement_id", ""),
		CredentialsPath:   loader.GetWithDefault("firebase.credentials_path", ""),
		CredentialsBase64: loader.GetWithDefault("firebase.credentials_base64", ""),
	}

	// Extract project_id from credentials if not provided
	if config.ProjectID == "" && config.CredentialsBase64 != "" {
		if extracted, err := extractProjectID(config.CredentialsBase64); err == nil {
			config.ProjectID = extracted
		}
	}

	if err := config.Validate(); err != nil {
		return fmt.Errorf("firebase config validation failed: %w", err)
	}

	b.mu.Lock()
	b.config = config
	b.mu.Unlock()

	b.logger.Info("firebase config loaded", "project_id", config.ProjectID)
	return nil
}

// Initialize constructs the app, auth and database handles. Repeat calls
// reuse the existing handles instead of erroring, so callers may invoke it
// from any startup path. Only the document-cache attach is best-effort;
// every other failure propagates and the process should fail fast.
func (b *Bootstrap) Initialize(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.config == nil {
		return fmt.Errorf("initialize: %w", tracker.ErrConfigurationError)
	}

	start := time.Now()

	app, appReused, err := b.acquireApp(ctx)
	if err != nil {
		b.metrics.IncInitAttempts("failure")
		return fmt.Errorf("failed to initialize app handle: %w", err)
	}
	b.app = app

	authClient, authReused, err := b.acquireAuth(ctx, app)
	if err != nil {
		b.metrics.IncInitAttempts("failure")
		return fmt.Errorf("failed to initialize auth handle: %w", err)
	}
	b.authClient = authClient
	if authReused {
		b.logger.Debug("auth handle already acquired, reusing existing instance")
	}

	if b.dbClient == nil {
		dbClient, err := b.newFirestore(ctx, app)
		if err != nil {
			b.metrics.IncInitAttempts("failure")
			return fmt.Errorf("failed to initialize firestore handle: %w", err)
		}
		b.dbClient = dbClient
	}

	b.cacheReady = b.attachDocumentCache(ctx)

	if b.docStore == nil {
		var docCache tracker.Cache
		if b.cacheReady {
			docCache = b.cache
		}
		b.docStore = store.New(b.dbClient, docCache, b.logger, b.metrics)
	}

	b.metrics.ObserveInitDuration(time.Since(start))
	if appReused {
		b.metrics.IncInitAttempts("reused")
	} else {
		b.metrics.IncInitAttempts("success")
	}
	b.initialized.Store(true)

	b.logger.Info("session bootstrap complete",
		"apps", b.appCountLocked(),
		"auth_reused", authReused,
		"document_cache", b.cacheReady)

	return nil
}

// acquireApp returns the existing app handle when one was already
// constructed in this process; otherwise it builds one from the config.
// The bool reports whether an existing handle was reused.
func (b *Bootstrap) acquireApp(ctx context.Context) (*firebase.App, bool, error) {
	if b.app != nil {
		return b.app, true, nil
	}

	opts, err := b.clientOptions()
	if err != nil {
		return nil, false, err
	}

	app, err := b.newApp(ctx, &firebase.Config{
		ProjectID:     b.config.ProjectID,
		StorageBucket: b.config.StorageBucket,
	}, opts...)
	if err != nil {
		return nil, false, err
	}

	return app, false, nil
}

// acquireAuth is the two-step idempotent acquire for the auth handle:
// try-create, and when a handle already exists fall back to it. The bool
// distinguishes the reuse case from a fresh construction.
func (b *Bootstrap) acquireAuth(ctx context.Context, app *firebase.App) (*firebaseauth.Client, bool, error) {
	if b.authClient != nil {
		return b.authClient, true, nil
	}

	client, err := b.newAuth(ctx, app)
	if err != nil {
		return nil, false, err
	}

	return client, false, nil
}

// attachDocumentCache probes the injected cache so the store only gets a
// cache that actually works. Failure leaves the database usable online-only
// and is never propagated.
func (b *Bootstrap) attachDocumentCache(ctx context.Context) bool {
	if b.cache == nil {
		b.logger.Debug("no document cache configured, operating online-only")
		return false
	}

	if err := b.cache.Set(ctx, cacheProbeKey, []byte("ok"), time.Minute); err != nil {
		b.logger.Warn("document cache unavailable, continuing online-only", "error", err)
		return false
	}
	if err := b.cache.Delete(ctx, cacheProbeKey); err != nil {
		b.logger.Debug("document cache probe cleanup failed", "error", err)
	}

	return true
}

// clientOptions builds the credential options for the app handle. Base64
// credentials win over a credentials file; with neither, application
// default credentials apply.
func (b *Bootstrap) clientOptions() ([]option.ClientOption, error) {
	if b.config.CredentialsBase64 != "" {
		credentialsJSON, err := base64.StdEncoding.DecodeString(b.config.CredentialsBase64)
		if err != nil {
			return nil, fmt.Errorf("failed to decode firebase credentials: %w", err)
		}
		return []option.ClientOption{option.WithCredentialsJSON(credentialsJSON)}, nil
	}

	if b.config.CredentialsPath != "" {
		return []option.ClientOption{option.WithCredentialsFile(b.config.CredentialsPath)}, nil
	}

	return nil, nil
}

// Initialized reports whether at least one app handle exists. Diagnostic
// query only; it gates nothing.
func (b *Bootstrap) Initialized() bool {
	return b.initialized.Load()
}

// AppCount returns the number of app handles in this process (0 or 1)
func (b *Bootstrap) AppCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.appCountLocked()
}

func (b *Bootstrap) appCountLocked() int {
	if b.app == nil {
		return 0
	}
	return 1
}

// App returns the app handle
func (b *Bootstrap) App() *firebase.App {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.app
}

// Auth returns the authentication handle
func (b *Bootstrap) Auth() *firebaseauth.Client {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.authClient
}

// Firestore returns the document database handle
func (b *Bootstrap) Firestore() *firestore.Client {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dbClient
}

// Store returns the document store built over the database handle
func (b *Bootstrap) Store() *store.Store {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.docStore
}

// CacheReady reports whether the document cache attach succeeded
func (b *Bootstrap) CacheReady() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cacheReady
}

// Health reports the state of each handle
func (b *Bootstrap) Health(ctx context.Context) map[string]error {
	b.mu.Lock()
	defer b.mu.Unlock()

	results := make(map[string]error, 3)

	if b.app == nil {
		results["app"] = tracker.ErrNotInitialized
	} else {
		results["app"] = nil
	}

	if b.authClient == nil {
		results["auth"] = tracker.ErrNotInitialized
	} else {
		results["auth"] = nil
	}

	if b.docStore == nil {
		results["firestore"] = tracker.ErrNotInitialized
	} else {
		results["firestore"] = b.docStore.Health(ctx)
	}

	for handle, err := range results {
		b.metrics.SetHandleStatus(handle, err == nil)
	}

	return results
}

// Close releases the database handle. The auth handle and app hold no
// resources that need explicit cleanup.
func (b *Bootstrap) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.docStore != nil {
		if err := b.docStore.Close(); err != nil {
			return fmt.Errorf("failed to close document store: %w", err)
		}
	}

	b.initialized.Store(false)
	return nil
}

// extractProjectID pulls project_id out of base64-encoded credentials JSON
func extractProjectID(credentialsBase64 string) (string, error) {
	credentialsJSON, err := base64.StdEncoding.DecodeString(credentialsBase64)
	if err != nil {
		return "", fmt.Errorf("failed to decode firebase credentials: %w", err)
	}

	var credentials struct {
		ProjectID string `json:"project_id"`
	}
	if err := json.Unmarshal(credentialsJSON, &credentials); err != nil {
		return "", fmt.Errorf("failed to parse firebase credentials JSON: %w", err)
	}

	if credentials.ProjectID == "" {
		return "", tracker.ErrMissingProjectID
	}

	return credentials.ProjectID, nil
}
