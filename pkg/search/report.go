package search

import (
	stderrors "errors"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/reposcout/pkg/errors"
)

// reportFailure logs err with the fields that identify its kind.
func reportFailure(logger *log.Logger, err error) {
	switch errors.Classify(err) {
	case errors.KindProvider:
		var pe *errors.ProviderRequestError
		stderrors.As(err, &pe)
		logger.Error("provider request error",
			"name", pe.Name,
			"status", pe.Status,
			"message", pe.Message,
			"see", pe.DocumentationURL,
			"errors", pe.Errors,
		)
	case errors.KindTransport:
		var te *errors.TransportError
		stderrors.As(err, &te)
		logger.Error("request error",
			"name", te.Name,
			"cause", te.Cause,
			"message", te.Message,
		)
		logger.Debug("request error stack", "stack", te.Stack())
	default:
		logger.Error("an error occurred", "error", err)
	}
}
