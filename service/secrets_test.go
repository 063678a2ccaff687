package service

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/truemediaorg/igfetch/config"
)

type MockSecretGetter struct {
	mock.Mock
}

func (m *MockSecretGetter) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	args := m.Called(ctx, aws.ToString(params.SecretId))
	output, _ := args.Get(0).(*secretsmanager.GetSecretValueOutput)
	return output, args.Error(1)
}

func TestApplyInstagramSecrets(t *testing.T) {
	t.Run("does nothing without a secret path", func(t *testing.T) {
		secrets := new(MockSecretGetter)
		cfg := config.InstagramConfig{DocID: "1"}

		assert.NoError(t, ApplyInstagramSecrets(context.TODO(), secrets, &cfg))
		assert.Equal(t, "1", cfg.DocID)
		secrets.AssertNumberOfCalls(t, "GetSecretValue", 0)
	})

	t.Run("overrides settings from the secret", func(t *testing.T) {
		secrets := new(MockSecretGetter)
		secrets.On("GetSecretValue", context.TODO(), "igfetch/instagram").Return(&secretsmanager.GetSecretValueOutput{
			SecretString: aws.String(`{"docId":"99","appId":"77"}`),
		}, nil)
		cfg := config.InstagramConfig{DocID: "1", AppID: "2", UserAgent: "ua", SecretPath: "igfetch/instagram"}

		assert.NoError(t, ApplyInstagramSecrets(context.TODO(), secrets, &cfg))
		assert.Equal(t, "99", cfg.DocID)
		assert.Equal(t, "77", cfg.AppID)
		assert.Equal(t, "ua", cfg.UserAgent)
	})

	t.Run("surfaces lookup and decode errors", func(t *testing.T) {
		secrets := new(MockSecretGetter)
		secrets.On("GetSecretValue", context.TODO(), "missing").Return(nil, errors.New("ResourceNotFoundException"))
		secrets.On("GetSecretValue", context.TODO(), "garbled").Return(&secretsmanager.GetSecretValueOutput{
			SecretString: aws.String(`not json`),
		}, nil)

		assert.Error(t, ApplyInstagramSecrets(context.TODO(), secrets, &config.InstagramConfig{SecretPath: "missing"}))
		assert.Error(t, ApplyInstagramSecrets(context.TODO(), secrets, &config.InstagramConfig{SecretPath: "garbled"}))
	})
}
