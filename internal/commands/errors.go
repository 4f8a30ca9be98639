package commands

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"todoctl/internal/backend/restapi"
	"todoctl/internal/exitcode"
)

// printServiceError reports a failed API operation and picks the exit code
// from the tagged error type instead of probing error strings.
func printServiceError(errOut io.Writer, err error) int {
	var verr *restapi.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintf(errOut, "error: %s\n", verr.Error())
		return exitcode.UserError
	}

	var merr *restapi.MessageError
	if errors.As(err, &merr) {
		fmt.Fprintf(errOut, "error: %s\n", merr.Message)
		if merr.Status == http.StatusUnauthorized || merr.Status == http.StatusForbidden {
			return exitcode.AuthError
		}
		return exitcode.BackendError
	}

	var terr *restapi.TransportError
	if errors.As(err, &terr) {
		fmt.Fprintf(errOut, "error: %s\n", terr.Error())
		return exitcode.BackendError
	}

	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}
