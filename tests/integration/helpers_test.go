package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"proofr-backend/domain/core/entities"
	"proofr-backend/domain/core/valueobjects"
	"proofr-backend/domain/services"
	"proofr-backend/infrastructure/di"
	"proofr-backend/infrastructure/messaging/eventbridge"
	"proofr-backend/infrastructure/persistence/memory"
	"proofr-backend/interfaces/http/rest"
	"proofr-backend/pkg/auth"
)

const testSecret = "integration-test-secret"

// stubSearcher returns canned results in a fixed order, standing in for the
// delegated search collaborator.
type stubSearcher struct {
	results []*entities.Guide
}

func (s *stubSearcher) Search(ctx context.Context, query string, limit int) ([]*entities.Guide, error) {
	return s.results, nil
}

type testEnv struct {
	server          *httptest.Server
	guideRepo       *memory.GuideRepository
	interactionRepo *memory.InteractionRepository
	commentRepo     *memory.CommentRepository
	searcher        *stubSearcher
	generator       *auth.JWTGenerator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	guideRepo := memory.NewGuideRepository()
	interactionRepo := memory.NewInteractionRepository()
	commentRepo := memory.NewCommentRepository()
	searcher := &stubSearcher{}
	screener := services.NewContentScreener([]string{"spam"})
	eventBus := eventbridge.NewNoop()
	logger := zap.NewNop()

	commandBus := di.ProvideCommandBus(guideRepo, interactionRepo, commentRepo, screener, eventBus, logger)
	queryBus := di.ProvideQueryBus(guideRepo, interactionRepo, commentRepo, searcher, logger)

	validator, err := auth.NewJWTValidator(auth.JWTConfig{SecretKey: testSecret, Issuer: "proofr-backend"})
	require.NoError(t, err)
	generator, err := auth.NewJWTGenerator(testSecret, "proofr-backend", nil, time.Hour)
	require.NoError(t, err)

	router := rest.NewRouter(commandBus, queryBus, validator, auth.NewIPRateLimiter(10000), nil, nil, logger)
	server := httptest.NewServer(router.Setup())
	t.Cleanup(server.Close)

	return &testEnv{
		server:          server,
		guideRepo:       guideRepo,
		interactionRepo: interactionRepo,
		commentRepo:     commentRepo,
		searcher:        searcher,
		generator:       generator,
	}
}

func (e *testEnv) token(t *testing.T, userID string) string {
	t.Helper()
	token, err := e.generator.GenerateToken(userID, userID+"@example.com", nil)
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.server.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

// seedPublished stores an already-published guide, bypassing the moderation
// flow the API enforces on creates.
func (e *testEnv) seedPublished(t *testing.T, title, category string, difficulty entities.GuideDifficulty, viewCount int, avgRating float64) *entities.Guide {
	t.Helper()
	publishedAt := time.Now()
	guide := entities.ReconstructGuide(
		valueobjects.NewGuideID(),
		"author-1",
		title, entities.Slugify(title), "a description", category,
		difficulty,
		"published guide content",
		nil,
		"",
		entities.StatusPublished,
		0.97,
		1, 3, 1, viewCount,
		avgRating,
		time.Now().Add(-time.Hour),
		&publishedAt, nil,
	)
	require.NoError(t, e.guideRepo.Save(context.Background(), guide))
	return guide
}
