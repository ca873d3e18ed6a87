// Package lambdaapi adapts the verse HTTP server to AWS Lambda Function URLs
// and API Gateway HTTP APIs through the algnhsa adapter.
package lambdaapi

import (
	"net/http"

	"github.com/akrylysov/algnhsa"
	"github.com/aws/aws-lambda-go/lambda"
)

// NewHandler wraps h so Lambda payload format 2.0 events reach it as plain
// HTTP requests.
func NewHandler(h http.Handler) lambda.Handler {
	return algnhsa.New(h, &algnhsa.Options{
		RequestType: algnhsa.RequestTypeAPIGatewayV2,
	})
}
