package tracing

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

func ConfigureTraceProvider(jaegerEndpoint string) *tracesdk.TracerProvider {
	var opts []tracesdk.TracerProviderOption

	if jaegerEndpoint != "" {
		exp, err := jaeger.New(
			jaeger.WithCollectorEndpoint(
				jaeger.WithEndpoint(jaegerEndpoint),
			),
		)
		if err != nil {
			panic(err)
		}
		opts = append(opts, tracesdk.WithBatcher(exp))
	}

	opts = append(opts, tracesdk.WithResource(
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName("flights"),
		)))

	tp := tracesdk.NewTracerProvider(opts...)

	otel.SetTracerProvider(tp)

	// Without the propagator traces are not carried across messages.
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp
}

// PublisherDecorator injects the current trace context into outgoing message
// metadata.
type PublisherDecorator struct {
	message.Publisher
}

func (d PublisherDecorator) Publish(topic string, messages ...*message.Message) error {
	for i := range messages {
		otel.GetTextMapPropagator().Inject(messages[i].Context(), propagation.MapCarrier(messages[i].Metadata))
	}
	return d.Publisher.Publish(topic, messages...)
}
