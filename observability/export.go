package observability

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"

	"github.com/kbukum/recskit/version"
)

// Export names the OTLP HTTP collector and the identity reported to it.
type Export struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	// Endpoint is host:port, e.g. "localhost:4318".
	Endpoint string
	Insecure bool
}

// DefaultExport targets a local collector, reporting the binary's version.
func DefaultExport(serviceName string) Export {
	return Export{
		ServiceName:    serviceName,
		ServiceVersion: version.Get().Short(),
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
	}
}

// resource merges the export identity over the SDK defaults. The identity
// attributes are schemaless so the merge never conflicts on schema URL.
func (e Export) resource() (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			attribute.String(AttrServiceName, e.ServiceName),
			attribute.String(AttrServiceVersion, e.ServiceVersion),
			attribute.String(AttrEnvironment, e.Environment),
		),
	)
}

// Span names.
const (
	SpanPipelineRun = "recs.run"
)

// Attribute keys.
const (
	AttrServiceName    = "service.name"
	AttrServiceVersion = "service.version"
	AttrEnvironment    = "deployment.environment"
	AttrOperationName  = "operation.name"
	AttrStageName      = "stage.name"
	AttrRunID          = "run.id"
	AttrInputFiles     = "input.files"
	AttrDurationMs     = "duration_ms"
	AttrStatus         = "status"
	AttrErrorMessage   = "error.message"
)
