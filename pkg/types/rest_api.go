package types

// CreatedDateLayout é o formato aplicado a createdDate nas duas saídas (CSV e JSON).
const CreatedDateLayout = "2006-01-02 15:04:05"

// RestAPI DTO representa uma REST API do API Gateway como aparece no relatório.
// Campos opcionais usam ponteiros ou slices nil para que a ausência seja observável.
type RestAPI struct {
	ID                        string                 `json:"id"`
	Name                      *string                `json:"name,omitempty"`
	Description               *string                `json:"description,omitempty"`
	CreatedDate               *string                `json:"createdDate,omitempty"`
	Version                   *string                `json:"version,omitempty"`
	Warnings                  []string               `json:"warnings,omitempty"`
	BinaryMediaTypes          []string               `json:"binaryMediaTypes,omitempty"`
	MinimumCompressionSize    *int32                 `json:"minimumCompressionSize,omitempty"`
	APIKeySource              *string                `json:"apiKeySource,omitempty"`
	EndpointConfiguration     *EndpointConfiguration `json:"endpointConfiguration,omitempty"`
	Policy                    *string                `json:"policy,omitempty"`
	Tags                      map[string]string      `json:"tags,omitempty"`
	DisableExecuteAPIEndpoint *bool                  `json:"disableExecuteApiEndpoint,omitempty"`
	RootResourceID            *string                `json:"rootResourceId,omitempty"`
}

// EndpointConfiguration DTO com os tipos de endpoint e os VPC endpoints associados.
type EndpointConfiguration struct {
	Types          []string `json:"types,omitempty"`
	VpcEndpointIDs []string `json:"vpcEndpointIds,omitempty"`
}
