package repository

import (
	"errors"
	"net/http"

	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/smithy-go"
	"github.com/aws/smithy-go/middleware"
	smithyhttp "github.com/aws/smithy-go/transport/http"

	"github.com/raywall/apigw-report/internal/reporterr"
)

// collaboratorError embrulha uma falha do SDK com o status HTTP e o código de erro.
func collaboratorError(op string, err error) error {
	ce := &reporterr.CollaboratorError{Op: op, Err: err}
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		ce.StatusCode = respErr.HTTPStatusCode()
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		ce.Code = apiErr.ErrorCode()
	}
	return ce
}

// checkResponseCode rejeita qualquer resposta cujo status HTTP não seja 200.
func checkResponseCode(op string, md middleware.Metadata) error {
	raw, ok := awsmiddleware.GetRawResponse(md).(*smithyhttp.Response)
	if !ok || raw == nil || raw.Response == nil {
		return nil
	}
	if raw.StatusCode != http.StatusOK {
		return &reporterr.CollaboratorError{Op: op, StatusCode: raw.StatusCode}
	}
	return nil
}

// isAPIErrorCode verifica o código do smithy APIError.
func isAPIErrorCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == code
	}
	return false
}
