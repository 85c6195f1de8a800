package github

import (
	stderrors "errors"
	"net/http"

	gh "github.com/google/go-github/v53/github"

	"github.com/matzehuels/reposcout/pkg/errors"
)

// Documentation links for errors whose go-github type drops the one GitHub sent.
const (
	rateLimitDocs          = "https://docs.github.com/rest/overview/resources-in-the-rest-api#rate-limiting"
	secondaryRateLimitDocs = "https://docs.github.com/rest/overview/resources-in-the-rest-api#secondary-rate-limits"
)

// Names given to provider errors.
const (
	NameHTTPError               = "HttpError"
	NameRateLimitError          = "RateLimitError"
	NameSecondaryRateLimitError = "SecondaryRateLimitError"
)

// convertError maps a go-github failure onto the request error taxonomy.
// Error responses become *errors.ProviderRequestError, everything else
// (network failures, cancelled contexts, undecodable bodies) becomes
// *errors.TransportError. The original error stays reachable via Unwrap.
func convertError(err error) error {
	if err == nil {
		return nil
	}

	var rle *gh.RateLimitError
	if stderrors.As(err, &rle) {
		return &errors.ProviderRequestError{
			Status:           statusOf(rle.Response, http.StatusForbidden),
			Name:             NameRateLimitError,
			Message:          rle.Message,
			DocumentationURL: rateLimitDocs,
			Cause:            err,
		}
	}

	var abuse *gh.AbuseRateLimitError
	if stderrors.As(err, &abuse) {
		return &errors.ProviderRequestError{
			Status:           statusOf(abuse.Response, http.StatusForbidden),
			Name:             NameSecondaryRateLimitError,
			Message:          abuse.Message,
			DocumentationURL: secondaryRateLimitDocs,
			Cause:            err,
		}
	}

	var er *gh.ErrorResponse
	if stderrors.As(err, &er) {
		pe := &errors.ProviderRequestError{
			Status:           statusOf(er.Response, 0),
			Name:             NameHTTPError,
			Message:          er.Message,
			DocumentationURL: er.DocumentationURL,
			Cause:            err,
		}
		for _, fe := range er.Errors {
			pe.Errors = append(pe.Errors, errors.FieldError{
				Resource: fe.Resource,
				Field:    fe.Field,
				Code:     fe.Code,
				Message:  fe.Message,
			})
		}
		return pe
	}

	return errors.NewTransportError(err)
}

func statusOf(resp *http.Response, fallback int) int {
	if resp == nil {
		return fallback
	}
	return resp.StatusCode
}
