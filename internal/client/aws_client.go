package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	apigw "github.com/aws/aws-sdk-go-v2/service/apigateway"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/raywall/apigw-report/internal/reporterr"
)

// Options seleciona a identidade e a região dos clientes.
// Campos vazios caem na cadeia padrão do SDK.
type Options struct {
	Region    string
	Profile   string
	AccessKey string
	SecretKey string
}

// AWSClient agrupa os clientes AWS usados pelo relatório.
type AWSClient struct {
	Config    aws.Config
	APIGW     *apigw.Client // REST API (v1)
	EC2       *ec2.Client   // region listing
	STS       *sts.Client
	Region    string
	AccountID string
}

// New cria um AWSClient para as opções informadas.
func New(ctx context.Context, opts Options) (*AWSClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx, loadOptions(opts)...)
	if err != nil {
		var profileErr config.SharedConfigProfileNotExistError
		if errors.As(err, &profileErr) {
			return nil, &reporterr.ConfigurationError{Field: "profile", Value: opts.Profile, Err: err}
		}
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	return &AWSClient{
		Config: cfg,
		APIGW:  apigw.NewFromConfig(cfg),
		EC2:    ec2.NewFromConfig(cfg),
		STS:    sts.NewFromConfig(cfg),
		Region: cfg.Region,
	}, nil
}

func loadOptions(opts Options) []func(*config.LoadOptions) error {
	var out []func(*config.LoadOptions) error
	if region := strings.TrimSpace(opts.Region); region != "" {
		out = append(out, config.WithRegion(region))
	}
	if profile := strings.TrimSpace(opts.Profile); profile != "" {
		out = append(out, config.WithSharedConfigProfile(profile))
	}
	if opts.AccessKey != "" && opts.SecretKey != "" {
		out = append(out, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}
	return out
}

// LoadAccountID resolve a conta do chamador via STS e guarda o resultado.
func (c *AWSClient) LoadAccountID(ctx context.Context) (string, error) {
	if c.AccountID != "" {
		return c.AccountID, nil
	}
	result, err := c.STS.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("getting account ID: %w", err)
	}
	c.AccountID = aws.ToString(result.Account)
	return c.AccountID, nil
}
