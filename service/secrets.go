package service

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/pkg/errors"
	"github.com/truemediaorg/igfetch/config"

	log "github.com/sirupsen/logrus"
)

type SecretGetter interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// NewSecretsManagerClient builds a client from the default AWS credential chain.
func NewSecretsManagerClient(ctx context.Context) (*secretsmanager.Client, error) {
	awsConfig, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load aws config")
	}
	return secretsmanager.NewFromConfig(awsConfig), nil
}

// ApplyInstagramSecrets overrides the graph settings in cfg with the secret
// stored at cfg.SecretPath. It is a no-op when no path is configured.
func ApplyInstagramSecrets(ctx context.Context, secrets SecretGetter, cfg *config.InstagramConfig) error {
	if cfg.SecretPath == "" {
		return nil
	}
	result, err := secrets.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(cfg.SecretPath),
	})
	if err != nil {
		return errors.Wrapf(err, "get secret %s", cfg.SecretPath)
	}
	if result.SecretString == nil {
		return errors.Errorf("secret %s has no string value", cfg.SecretPath)
	}
	var instagramSecrets config.InstagramSecretData
	if err = json.Unmarshal([]byte(*result.SecretString), &instagramSecrets); err != nil {
		return errors.Wrap(err, "instagram secrets read error")
	}
	instagramSecrets.Apply(cfg)
	log.WithField("secretPath", cfg.SecretPath).Info("instagram settings loaded from secrets manager")
	return nil
}
