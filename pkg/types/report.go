package types

// RestAPITree é uma RestAPI com seus recursos aninhados (saída JSON).
type RestAPITree struct {
	RestAPI
	Resources []Resource `json:"Resources"`
}

// Report é o documento JSON exportado.
type Report struct {
	RestApis []RestAPITree `json:"RestApis"`
}
