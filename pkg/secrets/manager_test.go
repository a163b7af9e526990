package secrets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
	"github.com/jordanlanch/industrycatalog/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSecretsAPI struct {
	secretsmanageriface.SecretsManagerAPI
	values map[string]string
	calls  []string
	err    error
}

func (f *fakeSecretsAPI) GetSecretValueWithContext(_ aws.Context, in *secretsmanager.GetSecretValueInput, _ ...request.Option) (*secretsmanager.GetSecretValueOutput, error) {
	id := aws.StringValue(in.SecretId)
	f.calls = append(f.calls, id)
	if f.err != nil {
		return nil, f.err
	}
	v, ok := f.values[id]
	if !ok {
		return nil, &secretsmanager.ResourceNotFoundException{Message_: aws.String("not found")}
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: aws.String(v)}, nil
}

func TestNewManager(t *testing.T) {
	m, err := NewManager(Config{Backend: BackendEnv})
	require.NoError(t, err)
	assert.IsType(t, EnvironmentManager{}, m)

	_, err = NewManager(Config{Backend: "vault"})
	assert.Error(t, err)
}

func TestEnvironmentManager(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://db:27017")

	v, err := EnvironmentManager{}.GetSecret(context.Background(), "MONGO_URI")
	require.NoError(t, err)
	assert.Equal(t, "mongodb://db:27017", v)

	_, err = EnvironmentManager{}.GetSecret(context.Background(), "UNSET_SECRET_KEY")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAWSSecretsManager_PrefixAndCache(t *testing.T) {
	api := &fakeSecretsAPI{values: map[string]string{"catalog/MONGO_URI": "mongodb://prod"}}
	m := NewAWSSecretsManager(api, Config{Prefix: "catalog/", CacheDuration: time.Minute})
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	ctx := context.Background()
	v, err := m.GetSecret(ctx, "MONGO_URI")
	require.NoError(t, err)
	assert.Equal(t, "mongodb://prod", v)

	_, err = m.GetSecret(ctx, "MONGO_URI")
	require.NoError(t, err)
	assert.Len(t, api.calls, 1, "second read is cached")

	now = now.Add(2 * time.Minute)
	_, err = m.GetSecret(ctx, "MONGO_URI")
	require.NoError(t, err)
	assert.Len(t, api.calls, 2, "expired entries are refetched")
}

func TestAWSSecretsManager_Errors(t *testing.T) {
	ctx := context.Background()

	m := NewAWSSecretsManager(&fakeSecretsAPI{}, Config{})
	_, err := m.GetSecret(ctx, "REDIS_URL")
	assert.ErrorIs(t, err, ErrNotFound)

	m = NewAWSSecretsManager(&fakeSecretsAPI{err: errors.New("throttled")}, Config{})
	_, err = m.GetSecret(ctx, "REDIS_URL")
	assert.ErrorContains(t, err, "throttled")
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestResolve(t *testing.T) {
	api := &fakeSecretsAPI{values: map[string]string{
		"MONGO_URI":  "mongodb://secret",
		"SENTRY_DSN": "https://key@sentry.example/1",
	}}
	m := NewAWSSecretsManager(api, Config{})

	mongoURI := "mongodb://localhost:27017"
	redisURL := "redis://localhost:6379"
	sentryDSN := ""

	err := Resolve(context.Background(), m, map[string]*string{
		"MONGO_URI":  &mongoURI,
		"REDIS_URL":  &redisURL,
		"SENTRY_DSN": &sentryDSN,
	}, logger.Discard())
	require.NoError(t, err)

	assert.Equal(t, "mongodb://secret", mongoURI)
	assert.Equal(t, "redis://localhost:6379", redisURL, "missing secret keeps current value")
	assert.Equal(t, "https://key@sentry.example/1", sentryDSN)
}

func TestResolve_Failure(t *testing.T) {
	m := NewAWSSecretsManager(&fakeSecretsAPI{err: errors.New("access denied")}, Config{})

	uri := "mongodb://localhost"
	err := Resolve(context.Background(), m, map[string]*string{"MONGO_URI": &uri}, nil)
	assert.ErrorContains(t, err, "access denied")
	assert.Equal(t, "mongodb://localhost", uri)
}
