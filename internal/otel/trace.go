package otel

import (
	"go.opentelemetry.io/otel"

	"github.com/Alturino/pharmacy/internal/constants"
)

var Tracer = otel.Tracer(constants.AppPharmacy)
