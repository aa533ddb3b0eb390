package models

import (
	"github.com/raywall/apigw-report/internal/client"
	"github.com/raywall/apigw-report/internal/service"
)

// ConfigurationBundle contém o cliente AWS e a fonte de dados injetados nos data sources.
// É o valor (interface{}) que os data sources recebem como meta.
type ConfigurationBundle struct {
	Client *client.AWSClient
	Source service.RestAPISource
	Region string
}
