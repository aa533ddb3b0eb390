package provider

import (
	"context"
	"fmt"

	"github.com/hashicorp/terraform-plugin-log/tflog"
	"github.com/hashicorp/terraform-plugin-sdk/v2/diag"
	"github.com/hashicorp/terraform-plugin-sdk/v2/helper/schema"

	"github.com/raywall/apigw-report/internal/client"
	"github.com/raywall/apigw-report/internal/config"
	"github.com/raywall/apigw-report/internal/models"
	"github.com/raywall/apigw-report/internal/repository"
)

// Provider retorna o schema e o mapa de data sources.
func Provider() *schema.Provider {
	return &schema.Provider{
		Schema: map[string]*schema.Schema{
			"region": {
				Type:        schema.TypeString,
				Optional:    true,
				DefaultFunc: schema.EnvDefaultFunc("AWS_REGION", config.DefaultRegion),
				Description: "AWS region to report on",
			},
			"profile": {
				Type:        schema.TypeString,
				Optional:    true,
				DefaultFunc: schema.EnvDefaultFunc("AWS_PROFILE", ""),
				Description: "AWS shared-config profile name",
			},
			"access_key": {
				Type:        schema.TypeString,
				Optional:    true,
				DefaultFunc: schema.EnvDefaultFunc("AWS_ACCESS_KEY_ID", ""),
				Description: "AWS access key",
			},
			"secret_key": {
				Type:        schema.TypeString,
				Optional:    true,
				Sensitive:   true,
				DefaultFunc: schema.EnvDefaultFunc("AWS_SECRET_ACCESS_KEY", ""),
				Description: "AWS secret key",
			},
			"embed_methods": {
				Type:        schema.TypeBool,
				Optional:    true,
				Default:     false,
				Description: "Se true, inclui a configuração completa de cada método (embed=methods).",
			},
		},
		ResourcesMap: map[string]*schema.Resource{},
		DataSourcesMap: map[string]*schema.Resource{
			"apigwreport_rest_apis": DataSourceRestAPIs(),
		},
		ConfigureContextFunc: providerConfigure,
	}
}

func providerConfigure(ctx context.Context, d *schema.ResourceData) (interface{}, diag.Diagnostics) {
	cfg := config.Default()
	cfg.Region = d.Get("region").(string)
	cfg.Profile = d.Get("profile").(string)
	cfg.AccessKey = d.Get("access_key").(string)
	cfg.SecretKey = d.Get("secret_key").(string)
	if cfg.Region == "" {
		cfg.Region = config.DefaultRegion
	}

	if err := cfg.Validate(); err != nil {
		return nil, diag.FromErr(err)
	}

	// 1. Inicializa o AWS Client
	awsClient, err := client.New(ctx, client.Options{
		Region:    cfg.Region,
		Profile:   cfg.Profile,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
	})
	if err != nil {
		return nil, diag.FromErr(fmt.Errorf("creating AWS client: %w", err))
	}

	// Conta do chamador, exposta pelo data source. Falha aqui não impede a leitura.
	if _, err := awsClient.LoadAccountID(ctx); err != nil {
		tflog.Warn(ctx, "could not resolve caller identity", map[string]interface{}{"error": err.Error()})
	}

	// 2. Repositório (camada de acesso a dados)
	apigwRepo := repository.NewAPIGWRepository(awsClient)
	apigwRepo.EmbedMethods = d.Get("embed_methods").(bool)

	return &models.ConfigurationBundle{Client: awsClient, Source: apigwRepo, Region: awsClient.Region}, nil
}
