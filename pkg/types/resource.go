package types

// Resource DTO é um nó da árvore de rotas de uma REST API.
type Resource struct {
	ID              string            `json:"id"`
	ParentID        *string           `json:"parentId,omitempty"`
	Path            string            `json:"path"`
	PathPart        *string           `json:"pathPart,omitempty"`
	ResourceMethods map[string]Method `json:"resourceMethods,omitempty"`
}

// Method DTO guarda a configuração de um método HTTP. Fica vazio ({}) quando
// a configuração não foi embutida na consulta.
type Method struct {
	HTTPMethod        *string      `json:"httpMethod,omitempty"`
	AuthorizationType *string      `json:"authorizationType,omitempty"`
	AuthorizerID      *string      `json:"authorizerId,omitempty"`
	APIKeyRequired    *bool        `json:"apiKeyRequired,omitempty"`
	OperationName     *string      `json:"operationName,omitempty"`
	MethodIntegration *Integration `json:"methodIntegration,omitempty"`
}

// Integration DTO resume a integração de backend de um método.
type Integration struct {
	Type           *string `json:"type,omitempty"`
	HTTPMethod     *string `json:"httpMethod,omitempty"`
	URI            *string `json:"uri,omitempty"`
	ConnectionType *string `json:"connectionType,omitempty"`
}
