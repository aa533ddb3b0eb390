package repository

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	apigw "github.com/aws/aws-sdk-go-v2/service/apigateway"
	apigwtypes "github.com/aws/aws-sdk-go-v2/service/apigateway/types"

	"github.com/raywall/apigw-report/internal/client"
	dto "github.com/raywall/apigw-report/pkg/types"
)

// DefaultPageSize é a maior página que o API Gateway devolve nas listagens.
const DefaultPageSize int32 = 500

// APIGWAPI é a parte do cliente API Gateway usada pelo repositório.
type APIGWAPI interface {
	apigw.GetRestApisAPIClient
	apigw.GetResourcesAPIClient
}

// APIGWRepository lista as REST APIs e suas árvores de recursos (API Gateway v1).
type APIGWRepository struct {
	API          APIGWAPI
	PageSize     int32
	EmbedMethods bool
}

// NewAPIGWRepository cria o repositório sobre o cliente AWS compartilhado.
func NewAPIGWRepository(c *client.AWSClient) *APIGWRepository {
	return &APIGWRepository{API: c.APIGW, PageSize: DefaultPageSize}
}

func (r *APIGWRepository) pageSize() int32 {
	if r.PageSize <= 0 {
		return DefaultPageSize
	}
	return r.PageSize
}

// ListRestAPIs retorna todas as REST APIs da região, na ordem devolvida pelo
// API Gateway.
func (r *APIGWRepository) ListRestAPIs(ctx context.Context) ([]dto.RestAPI, error) {
	const op = "rest APIs list"
	p := apigw.NewGetRestApisPaginator(r.API, &apigw.GetRestApisInput{Limit: aws.Int32(r.pageSize())})

	var apis []dto.RestAPI
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, collaboratorError(op, err)
		}
		if err := checkResponseCode(op, page.ResultMetadata); err != nil {
			return nil, err
		}
		for _, item := range page.Items {
			apis = append(apis, toRestAPI(item))
		}
	}
	return apis, nil
}

// ListResources retorna a árvore de recursos de uma REST API.
func (r *APIGWRepository) ListResources(ctx context.Context, apiID string) ([]dto.Resource, error) {
	op := "resources of rest API " + apiID
	input := &apigw.GetResourcesInput{
		RestApiId: aws.String(apiID),
		Limit:     aws.Int32(r.pageSize()),
	}
	if r.EmbedMethods {
		input.Embed = []string{"methods"}
	}
	p := apigw.NewGetResourcesPaginator(r.API, input)

	var resources []dto.Resource
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, collaboratorError(op, err)
		}
		if err := checkResponseCode(op, page.ResultMetadata); err != nil {
			return nil, err
		}
		for _, item := range page.Items {
			resources = append(resources, toResource(item))
		}
	}
	return resources, nil
}

// --- conversão SDK -> DTO ---

func toRestAPI(in apigwtypes.RestApi) dto.RestAPI {
	out := dto.RestAPI{
		ID:                        aws.ToString(in.Id),
		Name:                      in.Name,
		Description:               in.Description,
		Version:                   in.Version,
		Warnings:                  in.Warnings,
		BinaryMediaTypes:          in.BinaryMediaTypes,
		MinimumCompressionSize:    in.MinimumCompressionSize,
		Policy:                    in.Policy,
		Tags:                      in.Tags,
		DisableExecuteAPIEndpoint: aws.Bool(in.DisableExecuteApiEndpoint),
		RootResourceID:            in.RootResourceId,
	}
	if in.CreatedDate != nil {
		out.CreatedDate = aws.String(formatCreatedDate(*in.CreatedDate))
	}
	if in.ApiKeySource != "" {
		out.APIKeySource = aws.String(string(in.ApiKeySource))
	}
	if ec := in.EndpointConfiguration; ec != nil {
		cfg := &dto.EndpointConfiguration{VpcEndpointIDs: ec.VpcEndpointIds}
		for _, t := range ec.Types {
			cfg.Types = append(cfg.Types, string(t))
		}
		out.EndpointConfiguration = cfg
	}
	return out
}

// formatCreatedDate mantém o fuso em que o timestamp chegou.
func formatCreatedDate(t time.Time) string {
	return t.Format(dto.CreatedDateLayout)
}

func toResource(in apigwtypes.Resource) dto.Resource {
	out := dto.Resource{
		ID:       aws.ToString(in.Id),
		ParentID: in.ParentId,
		Path:     aws.ToString(in.Path),
		PathPart: in.PathPart,
	}
	if in.ResourceMethods != nil {
		out.ResourceMethods = make(map[string]dto.Method, len(in.ResourceMethods))
		for name, m := range in.ResourceMethods {
			out.ResourceMethods[name] = toMethod(m)
		}
	}
	return out
}

func toMethod(in apigwtypes.Method) dto.Method {
	out := dto.Method{
		HTTPMethod:        in.HttpMethod,
		AuthorizationType: in.AuthorizationType,
		AuthorizerID:      in.AuthorizerId,
		APIKeyRequired:    in.ApiKeyRequired,
		OperationName:     in.OperationName,
	}
	if mi := in.MethodIntegration; mi != nil {
		integ := &dto.Integration{
			HTTPMethod: mi.HttpMethod,
			URI:        mi.Uri,
		}
		if mi.Type != "" {
			integ.Type = aws.String(string(mi.Type))
		}
		if mi.ConnectionType != "" {
			integ.ConnectionType = aws.String(string(mi.ConnectionType))
		}
		out.MethodIntegration = integ
	}
	return out
}
