package main

import (
	"testing"

	"github.com/raywall/apigw-report/provider"
)

func TestProviderServesDataSource(t *testing.T) {
	p := provider.Provider()
	if err := p.InternalValidate(); err != nil {
		t.Fatalf("Erro ao validar o provider: %v", err)
	}
	if len(p.ResourcesMap) != 0 {
		t.Errorf("o provider não deve expor resources, encontrados %d", len(p.ResourcesMap))
	}
	if p.DataSourcesMap["apigwreport_rest_apis"] == nil {
		t.Error("data source apigwreport_rest_apis não registrado")
	}
}
